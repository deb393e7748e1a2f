package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIntegration(t *testing.T) {
	i, err := NewIntegration("t", ProviderGoogle, true, json.RawMessage(`{"calendar_id":"abc","sync":{"days":30}}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"calendar_id":"abc","sync":{"days":30}}`, string(i.Settings))

	empty, err := NewIntegration("t", ProviderOutlook, false, nil)
	require.NoError(t, err)
	require.Equal(t, "{}", string(empty.Settings))

	_, err = NewIntegration("t", Provider("icloud"), true, nil)
	require.ErrorIs(t, err, ErrInvalidProvider)

	_, err = NewIntegration("t", ProviderDoctoralia, true, json.RawMessage(`[1,2]`))
	require.ErrorIs(t, err, ErrInvalidSettings)
}

package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient("t", "pet_clinic", " Ana ", "+5511999990000", "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.True(t, c.IsActive())
	require.NotNil(t, c.Attributes)

	_, err = NewClient("t", "pet_clinic", "", "", "")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewClient("t", "pet_clinic", "Ana", "", "não-é-email")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestClientUpdate(t *testing.T) {
	c, err := NewClient("t", "pet_clinic", "Ana", "", "")
	require.NoError(t, err)

	require.NoError(t, c.Update("Ana Souza", "123", "11", "", "", nil, map[string]string{"pet_name": "Rex"}))
	require.Equal(t, "Rex", c.Attributes["pet_name"])

	require.ErrorIs(t, c.Update(" ", "", "", "", "", nil, nil), ErrEmptyName)
	require.Equal(t, "Ana Souza", c.Name)
}

func TestInactiveSince(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c, err := NewClient("t", "retail", "Bia", "", "")
	require.NoError(t, err)
	c.CreatedAt = now.AddDate(0, 0, -100)

	require.True(t, c.InactiveSince(now, 90))

	c.UpdateLastPurchase(now.AddDate(0, 0, -10))
	require.False(t, c.InactiveSince(now, 90))
	require.True(t, c.InactiveSince(now, 10))
}

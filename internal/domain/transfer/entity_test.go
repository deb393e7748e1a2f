package transfer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer(t *testing.T) {
	_, err := NewTransfer("t", "b1", "b1", "p", "Ração", decimal.NewFromInt(1), "")
	require.ErrorIs(t, err, ErrSameBranch)

	_, err = NewTransfer("t", "b1", "b2", "p", "Ração", decimal.Zero, "")
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewTransfer("t", "", "b2", "p", "Ração", decimal.NewFromInt(1), "")
	require.ErrorIs(t, err, ErrEmptyBranches)

	tr, err := NewTransfer("t", "b1", "b2", "p", "Ração", decimal.NewFromInt(4), "")
	require.NoError(t, err)
	require.Equal(t, StatusPending, tr.Status)
}

func TestTransferTransitions(t *testing.T) {
	tr, err := NewTransfer("t", "b1", "b2", "p", "Ração", decimal.NewFromInt(4), "")
	require.NoError(t, err)

	require.NoError(t, tr.Update(decimal.NewFromInt(6), "urgente"))
	require.NoError(t, tr.Complete(time.Now()))
	require.Equal(t, StatusCompleted, tr.Status)
	require.NotNil(t, tr.CompletedAt)

	require.ErrorIs(t, tr.Cancel(), ErrNotPending)
	require.ErrorIs(t, tr.Update(decimal.NewFromInt(1), ""), ErrNotPending)
}

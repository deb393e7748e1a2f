package branch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	main, err := NewBranch("t", "Matriz", "001", "", "", Address{City: "Curitiba"}, "", "", true)
	require.NoError(t, err)
	require.Equal(t, TypeHeadquarters, main.Type)
	require.True(t, main.IsActive())

	b, err := NewBranch("t", "Loja Centro", "002", "", "", Address{}, "", "", false)
	require.NoError(t, err)
	require.Equal(t, TypeBranch, b.Type)

	_, err = NewBranch("", "X", "", TypeBranch, "", Address{}, "", "", false)
	require.ErrorIs(t, err, ErrEmptyTenantID)

	_, err = NewBranch("t", " ", "", TypeBranch, "", Address{}, "", "", false)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewBranch("t", "X", "", BranchType("kiosk"), "", Address{}, "", "", false)
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestBranchStatus(t *testing.T) {
	b, err := NewBranch("t", "Loja", "", TypeVirtual, "", Address{}, "", "", false)
	require.NoError(t, err)

	b.Deactivate()
	require.False(t, b.IsActive())
	b.Block()
	require.Equal(t, StatusBlocked, b.Status)
	b.Activate()
	require.True(t, b.IsActive())

	require.ErrorIs(t, b.Update("", "", "", "", Address{}), ErrEmptyName)
}

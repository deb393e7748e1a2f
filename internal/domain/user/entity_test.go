package user

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("t", "", "Maria", " Maria@Example.com ", "segredo1", RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", u.Email)
	require.NotEqual(t, "segredo1", u.Password)
	require.True(t, u.CheckPassword("segredo1"))
	require.False(t, u.CheckPassword("outra"))
	require.True(t, u.IsActive())

	_, err = NewUser("t", "", "Maria", "maria", "segredo1", RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("t", "", "Maria", "m@e.com", "123", RoleAdmin)
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = NewUser("t", "", "Maria", "m@e.com", "123456", Role("root"))
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestHasAccessToBranch(t *testing.T) {
	admin := &User{Role: RoleAdmin, BranchID: "b1"}
	staff := &User{Role: RoleStaff, BranchID: "b1"}
	floating := &User{Role: RoleStaff}

	require.True(t, admin.HasAccessToBranch("b2"))
	require.True(t, staff.HasAccessToBranch("b1"))
	require.False(t, staff.HasAccessToBranch("b2"))
	require.True(t, floating.HasAccessToBranch("b2"))
}

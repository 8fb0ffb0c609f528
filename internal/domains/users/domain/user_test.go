package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser_HashesPassword(t *testing.T) {
	user, err := NewUser("  Ana@Example.COM ", "Ana", "secret", bcrypt.MinCost)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)
	require.NotEqual(t, "secret", user.PasswordHash)
	require.True(t, user.CheckPassword("secret"))
	require.False(t, user.CheckPassword("wrong"))
	require.False(t, user.CheckPassword(""))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("not-an-email", "Ana", "secret", bcrypt.MinCost)
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("a@b.c", " ", "secret", bcrypt.MinCost)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("a@b.c", "Ana", "abc", bcrypt.MinCost)
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = NewUser("a@b.c", "Ana", "", bcrypt.MinCost)
	require.ErrorIs(t, err, ErrEmptyPassword)
}

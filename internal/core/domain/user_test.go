package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret1"))

	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("secret2"))
	assert.False(t, u.CheckPassword(""))
}

func TestSetPasswordSalted(t *testing.T) {
	a, b := &User{}, &User{}
	require.NoError(t, a.SetPassword("secret1"))
	require.NoError(t, b.SetPassword("secret1"))

	// Same secret, different salt, different hash.
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

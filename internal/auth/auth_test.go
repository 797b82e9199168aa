package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCredentials_Check(t *testing.T) {
	creds, err := NewStaticCredentials("admin", "12345")
	require.NoError(t, err)

	assert.True(t, creds.Check("admin", "12345"))
	assert.False(t, creds.Check("admin", "1234"))
	assert.False(t, creds.Check("Admin", "12345"))
	assert.False(t, creds.Check("", ""))
	assert.NotContains(t, string(creds.hash), "12345")
}

func TestStaticCredentials_FromHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	creds, err := NewStaticCredentialsFromHash("clerk", hash)
	require.NoError(t, err)
	assert.True(t, creds.Check("clerk", "s3cret"))
	assert.False(t, creds.Check("clerk", "secret"))

	_, err = NewStaticCredentialsFromHash("clerk", "not-a-hash")
	assert.Error(t, err)
}

func TestStaticCredentials_RequiresValues(t *testing.T) {
	_, err := NewStaticCredentials(" ", "x")
	assert.Error(t, err)
	_, err = NewStaticCredentials("admin", "")
	assert.Error(t, err)

	var nilCreds *StaticCredentials
	assert.False(t, nilCreds.Check("admin", "12345"))
}

func TestAuthenticatorFunc(t *testing.T) {
	var a Authenticator = AuthenticatorFunc(func(u, p string) bool { return u == p })
	assert.True(t, a.Check("x", "x"))
	assert.False(t, a.Check("x", "y"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", 42, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, email, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "admin@example.com", email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", 42, "admin@example.com")
	require.NoError(t, err)

	_, _, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, _, err := ValidateToken("secret", "not.a.token")
	assert.Error(t, err)
}

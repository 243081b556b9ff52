package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("amina@example.com", "test-secret")
	require.NoError(t, err)

	email, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := CreateToken("amina@example.com", "test-secret")
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hashed, "Sup3rSecret"))
	assert.Error(t, VerifyPassword(hashed, "WrongPassword1"))
}

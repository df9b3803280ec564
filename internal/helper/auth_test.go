package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	token, err := auth.GenerateToken("22bcs001", "Rahul Sharma", "student")
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "22bcs001", claims.Subject)
	assert.Equal(t, "Rahul Sharma", claims.Name)
	assert.Equal(t, "student", claims.Role)

	// bare token without the Bearer prefix is accepted too
	claims, err = auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student", claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken("22bcs001", "Rahul", "student")
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresSubjectAndRole(t *testing.T) {
	auth := SetupAuth("s")
	_, err := auth.GenerateToken("", "name", "student")
	assert.Error(t, err)
	_, err = auth.GenerateToken("22bcs001", "name", "")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := SetupAuth("s")
	assert.NoError(t, auth.VerifyPassword("secret1", string(hashed)))
	assert.Error(t, auth.VerifyPassword("wrong", string(hashed)))
}

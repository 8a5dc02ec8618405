package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "abc123", "maria@igreja.org", "tesoureira", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
	assert.Equal(t, "maria@igreja.org", claims.Email)
	assert.Equal(t, "tesoureira", claims.Cargo)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "abc123", "x@y.z", "", time.Hour)
	assert.NoError(t, err)

	_, err = ValidateToken("secret-b", token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", "abc123", "x@y.z", "", -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateToken("secret", token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-jwt")
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-signing-secret"

	t.Run("Valid Token", func(t *testing.T) {
		tokenString, err := GenerateJWT("user-123", "DOCTOR", secret, time.Hour)
		assert.NoError(t, err)

		userID, role, err := ParseJWT(tokenString, secret)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", userID)
		assert.Equal(t, "DOCTOR", role)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		tokenString, err := GenerateJWT("user-123", "USER", secret, time.Hour)
		assert.NoError(t, err)

		_, _, err = ParseJWT(tokenString, "another-secret")
		assert.Error(t, err, "a token signed with a different secret must be rejected")
	})

	t.Run("Expired Token", func(t *testing.T) {
		tokenString, err := GenerateJWT("user-123", "USER", secret, -time.Minute)
		assert.NoError(t, err)

		_, _, err = ParseJWT(tokenString, secret)
		assert.Error(t, err)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, _, err := ParseJWT("not.a.token", secret)
		assert.Error(t, err)
	})
}

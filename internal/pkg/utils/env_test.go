package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Run("Reads Set Variable", func(t *testing.T) {
		t.Setenv("TEST_ENV_STRING", "value")
		assert.Equal(t, "value", GetEnvString("TEST_ENV_STRING", "fallback"))
	})

	t.Run("Falls Back When Unset", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("TEST_ENV_STRING_UNSET", "fallback"))
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("Parses Integer", func(t *testing.T) {
		t.Setenv("TEST_ENV_INT", "42")
		assert.Equal(t, 42, GetEnvInt("TEST_ENV_INT", 7))
	})

	t.Run("Falls Back On Garbage", func(t *testing.T) {
		t.Setenv("TEST_ENV_INT", "forty-two")
		assert.Equal(t, 7, GetEnvInt("TEST_ENV_INT", 7))
	})
}

func TestGetEnvBool(t *testing.T) {
	t.Run("Parses Boolean", func(t *testing.T) {
		t.Setenv("TEST_ENV_BOOL", "true")
		assert.True(t, GetEnvBool("TEST_ENV_BOOL", false))
	})

	t.Run("Falls Back On Garbage", func(t *testing.T) {
		t.Setenv("TEST_ENV_BOOL", "yep")
		assert.True(t, GetEnvBool("TEST_ENV_BOOL", true))
	})
}

func TestGetEnvFloat(t *testing.T) {
	t.Run("Parses Float", func(t *testing.T) {
		t.Setenv("TEST_ENV_FLOAT", "0.05")
		assert.Equal(t, 0.05, GetEnvFloat("TEST_ENV_FLOAT", 0.1))
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("Bare Number Means Seconds", func(t *testing.T) {
		t.Setenv("TEST_ENV_DURATION", "240")
		assert.Equal(t, 240*time.Second, GetEnvDuration("TEST_ENV_DURATION", time.Minute))
	})

	t.Run("Duration String", func(t *testing.T) {
		t.Setenv("TEST_ENV_DURATION", "5m")
		assert.Equal(t, 5*time.Minute, GetEnvDuration("TEST_ENV_DURATION", time.Minute))
	})

	t.Run("Falls Back When Unset", func(t *testing.T) {
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_ENV_DURATION_UNSET", time.Minute))
	})

	t.Run("Falls Back On Garbage", func(t *testing.T) {
		t.Setenv("TEST_ENV_DURATION", "soon")
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_ENV_DURATION", time.Minute))
	})
}

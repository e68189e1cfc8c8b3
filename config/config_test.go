package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("KB_TEST_KEY", "from-env")

	assert.Equal(t, "from-env", GetEnvOrDefault("KB_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("KB_TEST_MISSING", "fallback"))
}

func TestGetEnvOrDefaultEmptyValueFallsBack(t *testing.T) {
	t.Setenv("KB_TEST_EMPTY", "")

	assert.Equal(t, "fallback", GetEnvOrDefault("KB_TEST_EMPTY", "fallback"))
}

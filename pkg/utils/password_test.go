package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("pw1")
	assert.NotEmpty(t, h)
	assert.NotEqual(t, "pw1", h)
	// bcrypt cost 10
	assert.True(t, strings.HasPrefix(h, "$2a$10$"))

	assert.True(t, CheckPassword("pw1", h))
	assert.False(t, CheckPassword("pw2", h))
}

func TestHashPasswordSalted(t *testing.T) {
	assert.NotEqual(t, HashPassword("pw1"), HashPassword("pw1"))
}

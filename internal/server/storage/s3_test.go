package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomKey(t *testing.T) {
	pattern := regexp.MustCompile(`^recipes/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}$`)

	k1 := RandomKey()
	k2 := RandomKey()

	assert.Regexp(t, pattern, k1)
	assert.Regexp(t, pattern, k2)
	assert.NotEqual(t, k1, k2)
}

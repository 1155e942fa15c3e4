package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "при", Truncate("привет", 3))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestStringPtr(t *testing.T) {
	p := StringPtr("x")
	assert.Equal(t, "x", *p)
}

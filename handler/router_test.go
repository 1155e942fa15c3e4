package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentKey(t *testing.T) {
	assert.Equal(t, "review", ComponentKey("review:accept:1:2"))
	assert.Equal(t, "begin-submission", ComponentKey("begin-submission"))
	assert.Equal(t, "", ComponentKey(""))
}

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCommands_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range AllCommands {
		assert.NotEmpty(t, cmd.Description, cmd.Name)
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
	}
	assert.Len(t, seen, 5)
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"handin/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["migrate"])
	assert.True(t, names["version"])
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "handin "+Version+"\n", out)
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "handin.db")
	cfg := "storage:\n  path: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))

	out, err := execute(t, "migrate", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, dbPath)
	assert.FileExists(t, dbPath)
}

func TestRunCommand_RequiresToken(t *testing.T) {
	t.Setenv("TOKEN", "")
	_, err := execute(t, "run", "--config", t.TempDir())
	assert.ErrorIs(t, err, config.ErrMissingToken)
}

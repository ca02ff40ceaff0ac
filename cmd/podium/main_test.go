package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf("[storage]\nbackend = \"file\"\npath = %q\n\n[log]\npath = %q\n",
		filepath.Join(dir, "snapshots"), filepath.Join(dir, "podium.log"))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("GEMINI_API_KEY", "")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportExportDraw(t *testing.T) {
	cfg := testConfig(t)
	topics := filepath.Join(t.TempDir(), "topics.yaml")
	require.NoError(t, os.WriteFile(topics, []byte("topics:\n  - title: Homework bans\n    side_a: Ban it\n"), 0o600))

	out, err := execute(t, "--config", cfg, "import", "--day", "2", topics)
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 topics into Day 2\n", out)

	exported := filepath.Join(t.TempDir(), "out.yaml")
	_, err = execute(t, "--config", cfg, "export", "--day", "2", "-o", exported)
	require.NoError(t, err)
	body, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Homework bans")

	out, err = execute(t, "--config", cfg, "--seed", "3", "draw", "--day", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Day 2 · Slot 1\n"), out)
	assert.Contains(t, out, "Side A (pro): Ban it")
	assert.Contains(t, out, "Side B (con): no content")

	_, err = execute(t, "--config", cfg, "draw", "--day", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no topics available")
}

func TestImport_RequiresFile(t *testing.T) {
	_, err := execute(t, "--config", testConfig(t), "import")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "podium version dev\n", out)
}

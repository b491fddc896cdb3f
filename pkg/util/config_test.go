package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[data]
path = "a.csv"
separator = ";"

[compute]
parallelism = 4
maxChunkCapacity = 1024
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFileName), []byte(content), 0644))

	cfg, fpath, err := LoadConfig([]string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CfgFileName), fpath)
	assert.Equal(t, "a.csv", cfg.Data.Path)
	assert.Equal(t, ";", cfg.Data.Separator)
	assert.Equal(t, 4, cfg.Compute.Parallelism)
	assert.Equal(t, 1024, cfg.Compute.MaxChunkCapacity)
	//untouched keys keep defaults
	assert.True(t, cfg.Data.Header)
	assert.Equal(t, 10, cfg.Data.GuessRows)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, fpath, err := LoadConfig([]string{t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, fpath)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigBad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFileName), []byte("[data\n"), 0644))
	_, _, err := LoadConfig([]string{dir})
	assert.Error(t, err)
}

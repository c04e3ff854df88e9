package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[offload]
workers = 3

[studio]
root = "/opt/studio"

[log]
verbosity = 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Offload.Workers)
	assert.Equal(t, "/opt/studio", cfg.Studio.Root)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[offload\nworkers="), 0o644))
	_, err := LoadConfig(dir)
	require.Error(t, err)
}

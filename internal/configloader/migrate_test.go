package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/config"
)

func TestConvertLegacyConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, LegacyConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`
[lintspec]
paths = ["src"]
notice_or_dev = true

[output]
sort = true

[constructor]
notice = "required"

[function.external]
return = "disallow"

[colors]
enabled = true
`), 0o644))

	result, err := ConvertLegacyConfig(path)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{"src"}, cfg.Paths)
	assert.True(t, cfg.NoticeOrDev)
	assert.True(t, cfg.Sort)
	assert.Equal(t, config.Required, cfg.Constructors.Notice)
	assert.Equal(t, config.Forbidden, cfg.Functions.External.Return)
	assert.Equal(t, config.Required, cfg.Functions.External.Param)

	assert.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "colors")
	assert.Equal(t, path, result.SourcePath)
}

func TestConvertLegacyConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, LegacyConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("[event]\ndev = \"require\"\n"), 0o644))

	result, err := ConvertLegacyConfig(path)
	require.NoError(t, err)

	data, err := result.MigratedYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Migrated from: .lintspec.toml")

	loaded, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, result.Config.Events, loaded.Events)
}

func TestConvertLegacyConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("not toml", func(t *testing.T) {
		t.Parallel()
		_, err := ConvertLegacyConfig(filepath.Join(dir, ".lintspec.yml"))
		require.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := ConvertLegacyConfig(filepath.Join(dir, "absent.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad requirement", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[enum]\nnotice = \"sometimes\"\n"), 0o644))
		_, err := ConvertLegacyConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.toml")
	})
}

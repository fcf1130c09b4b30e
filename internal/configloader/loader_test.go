package configloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojsonlint/internal/configloader"
	"github.com/yaklabco/gojsonlint/pkg/config"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".gojsonlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := configloader.Load(configloader.LoadOptions{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.SeverityWarning, result.Config.SchemaSeverity)
	assert.Equal(t, config.FormatText, result.Config.Format)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
schema: schemas/base.schema.json
allow_comments: true
ignore:
  - "testdata/*"
`)

	result, err := configloader.Load(configloader.LoadOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.True(t, result.Config.AllowComments)
	assert.Equal(t, []string{"testdata/*"}, result.Config.Ignore)

	// Relative schema paths resolve against the config file's directory.
	assert.Equal(t, filepath.Join(dir, "schemas/base.schema.json"), result.Config.Schema)
}

func TestLoadUpwardSearch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "allow_comments: true\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(configloader.LoadOptions{WorkingDir: nested})
	require.NoError(t, err)
	assert.True(t, result.Config.AllowComments)
}

func TestLoadCLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "schema: from-file.json\n")

	cli := config.NewConfig()
	cli.Schema = "/abs/from-cli.json"
	cli.Jobs = 3
	cli.Strict = true

	result, err := configloader.Load(configloader.LoadOptions{WorkingDir: dir, CLIConfig: cli})
	require.NoError(t, err)
	assert.Equal(t, "/abs/from-cli.json", result.Config.Schema)
	assert.Equal(t, 3, result.Config.Jobs)
	assert.True(t, result.Config.Strict)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   t.TempDir(),
		ExplicitPath: "/nonexistent/config.yaml",
	})
	require.Error(t, err)
}

func TestLoadInvalidSeverityWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "schema_severity: fatal\n")

	result, err := configloader.Load(configloader.LoadOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
	assert.Equal(t, config.SeverityWarning, result.Config.SchemaSeverity)
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "schemas: [unclosed\n")

	_, err := configloader.Load(configloader.LoadOptions{WorkingDir: dir})
	require.Error(t, err)
}

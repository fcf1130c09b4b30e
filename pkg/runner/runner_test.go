package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojsonlint/pkg/config"
	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/runner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{}`)
	writeFile(t, dir, "sub/b.jsonc", `{}`)
	writeFile(t, dir, "sub/skip.txt", `not json`)
	writeFile(t, dir, "node_modules/dep.json", `{}`)
	writeFile(t, dir, "excluded.json", `{}`)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"excluded.json"},
	})
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		rel, relErr := filepath.Rel(dir, f)
		require.NoError(t, relErr)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a.json", "sub/b.jsonc"}, names)
}

func TestDiscoverExplicitFileBypassesExtensionFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "data.conf", `{}`)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestRunCleanFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"x": 1}`)
	writeFile(t, dir, "b.json", `[1, 2, 3]`)

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 0, result.Stats.DiagnosticsTotal)
	assert.False(t, result.HasIssues())
}

func TestRunSyntaxErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{"a": 1,}`)

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	outcome := result.Files[0]
	require.Len(t, outcome.Problems, 1)
	assert.Equal(t, jsonast.CodeTrailingComma, outcome.Problems[0].Code)
	assert.True(t, result.HasFailures())
}

func TestRunWithSchemaMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "item.schema.json",
		`{"type": "object", "required": ["name"]}`)
	writeFile(t, dir, "good.json", `{"name": "ok"}`)
	writeFile(t, dir, "bad.json", `{"other": 1}`)

	cfg := config.NewConfig()
	cfg.Schemas = []config.SchemaMapping{
		{Patterns: []string{"*.json"}, Schema: schemaPath},
	}

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"good.json", "bad.json"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	byName := map[string]runner.FileOutcome{}
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}

	assert.Empty(t, byName["good.json"].Problems)
	require.Len(t, byName["bad.json"].Problems, 1)
	assert.Contains(t, byName["bad.json"].Problems[0].Message, `Missing property "name".`)
	assert.Equal(t, schemaPath, byName["bad.json"].SchemaPath)
}

func TestRunCommentPolicy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "plain.json", "// hi\n{}")
	writeFile(t, dir, "tolerant.jsonc", "// hi\n{}")

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	byName := map[string]runner.FileOutcome{}
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}

	require.Len(t, byName["plain.json"].Problems, 1)
	assert.Contains(t, byName["plain.json"].Problems[0].Message, "Comments are not permitted")
	assert.Empty(t, byName["tolerant.jsonc"].Problems)

	// With allow_comments, plain JSON tolerates comments too.
	cfg := config.NewConfig()
	cfg.AllowComments = true
	result, err = runner.Run(context.Background(), runner.Options{
		Paths:      []string{"plain.json"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Empty(t, result.Files[0].Problems)
}

func TestRunSeverityOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "s.json", `{"type": "array"}`)
	writeFile(t, dir, "data.json", `{}`)

	cfg := config.NewConfig()
	cfg.Schema = schemaPath
	cfg.SchemaSeverity = config.SeverityError

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"data.json"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Problems, 1)
	assert.Equal(t, jsonast.SeverityError, result.Files[0].Problems[0].Severity)

	// Ignore drops schema diagnostics entirely.
	cfg.SchemaSeverity = config.SeverityIgnore
	result, err = runner.Run(context.Background(), runner.Options{
		Paths:      []string{"data.json"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files[0].Problems)
}

func TestRunMissingSchemaIsFileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "data.json", `{}`)

	cfg := config.NewConfig()
	cfg.Schema = filepath.Join(dir, "missing.schema.json")

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"data.json"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Error(t, result.Files[0].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRunDeterministicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"c.json", "a.json", "b.json"} {
		writeFile(t, dir, name, `{}`)
	}

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Jobs:       4,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	for i := 1; i < len(result.Files); i++ {
		assert.Less(t, result.Files[i-1].Path, result.Files[i].Path)
	}
}

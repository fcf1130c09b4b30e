package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojsonlint/pkg/config"
)

func TestSchemaFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Schema = "fallback.schema.json"
	cfg.Schemas = []config.SchemaMapping{
		{Patterns: []string{"package.json"}, Schema: "package.schema.json"},
		{Patterns: []string{"*.config.json", "config/*.json"}, Schema: "config.schema.json"},
	}

	tests := []struct {
		path string
		want string
	}{
		{path: "package.json", want: "package.schema.json"},
		{path: "sub/dir/package.json", want: "package.schema.json"},
		{path: "app.config.json", want: "config.schema.json"},
		{path: "config/db.json", want: "config.schema.json"},
		{path: "other.json", want: "fallback.schema.json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfg.SchemaFor(tt.path))
		})
	}
}

func TestSchemaForFirstMatchWins(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Schemas = []config.SchemaMapping{
		{Patterns: []string{"*.json"}, Schema: "first.json"},
		{Patterns: []string{"data.json"}, Schema: "second.json"},
	}
	assert.Equal(t, "first.json", cfg.SchemaFor("data.json"))
}

func TestSchemaForNoDefault(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "", cfg.SchemaFor("anything.json"))
}

func TestSeverityIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SeverityError.IsValid())
	assert.True(t, config.SeverityWarning.IsValid())
	assert.True(t, config.SeverityIgnore.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}

func TestOutputFormatIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatText.IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("xml").IsValid())
}

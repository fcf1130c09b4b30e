// Package langdetect classifies files as JSON, JSON-with-comments or
// something else during directory discovery. It combines well-known file
// name conventions with go-enry content detection so that extensionless or
// oddly named files are still picked up correctly.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Flavor is the detected file flavor.
type Flavor string

const (
	FlavorJSON  Flavor = "json"
	FlavorJSONC Flavor = "jsonc"
	FlavorOther Flavor = "other"
)

// jsoncFileNames are well-known file names whose content is JSONC, whether
// or not they carry a .json extension.
var jsoncFileNames = map[string]bool{
	"tsconfig.json":      true,
	"jsconfig.json":      true,
	"settings.json":      true,
	"keybindings.json":   true,
	"launch.json":        true,
	"tasks.json":         true,
	"devcontainer.json":  true,
	".devcontainer.json": true,
	".eslintrc.json":     true,
	".babelrc":           true,
	".hintrc":            true,
	".swcrc":             true,
	"typedoc.json":       true,
}

// Detect classifies a file by path and, when the path is inconclusive, by
// content.
func Detect(path string, content []byte) Flavor {
	base := strings.ToLower(filepath.Base(path))
	if jsoncFileNames[base] {
		return FlavorJSONC
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".jsonc", ".json5":
		return FlavorJSONC
	case ".json":
		return FlavorJSON
	}

	return detectByContent(content)
}

// detectByContent falls back to enry's classifier for files whose name and
// extension Detect does not recognise.
func detectByContent(content []byte) Flavor {
	if len(content) == 0 {
		return FlavorOther
	}

	candidates := []string{"JSON", "JSON with Comments", "JSON5", "YAML", "Text", "Markdown", "XML"}
	lang, safe := enry.GetLanguageByClassifier(content, candidates)
	if !safe {
		return FlavorOther
	}
	switch lang {
	case "JSON":
		return FlavorJSON
	case "JSON with Comments", "JSON5":
		return FlavorJSONC
	default:
		return FlavorOther
	}
}

// IsLintable reports whether the flavor is one gojsonlint processes.
func (f Flavor) IsLintable() bool {
	return f == FlavorJSON || f == FlavorJSONC
}

// AllowsComments reports whether the flavor permits comments without
// diagnostics.
func (f Flavor) AllowsComments() bool {
	return f == FlavorJSONC
}

package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Load reads a schema document from disk. The format is chosen by file
// extension: .yaml/.yml documents are decoded as YAML, everything else as
// JSON.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return FromJSON(data)
	}
}

// FromYAML decodes a schema document from YAML bytes. The document is
// decoded generically and then round-tripped through JSON so the schema
// model's keyword decoding applies uniformly.
func FromYAML(data []byte) (*Schema, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema yaml: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert schema yaml: %w", err)
	}
	return FromJSON(raw)
}

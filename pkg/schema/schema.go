// Package schema defines the JSON Schema (draft-07 subset) document model
// consumed by the validator. The validator walks this model directly; there
// is no compilation step, and $ref resolution is out of scope (references
// are expected to be inlined by the caller). Unknown keywords are ignored.
package schema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is a JSON Schema object restricted to the draft-07 keywords the
// validator honors. Pointer fields distinguish absent keywords from zero
// values.
type Schema struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Type is a single type name or a list of names.
	Type  TypeSet     `json:"type,omitempty"`
	Enum  []any       `json:"enum,omitempty"`
	Const *ConstValue `json:"const,omitempty"`

	// Numeric assertions.
	MultipleOf       *float64   `json:"multipleOf,omitempty"`
	Minimum          *float64   `json:"minimum,omitempty"`
	Maximum          *float64   `json:"maximum,omitempty"`
	ExclusiveMinimum *Exclusive `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *Exclusive `json:"exclusiveMaximum,omitempty"`

	// String assertions.
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Format    string `json:"format,omitempty"`

	// Array applicators and assertions.
	Items           *Items `json:"items,omitempty"`
	AdditionalItems *Ref   `json:"additionalItems,omitempty"`
	Contains        *Ref   `json:"contains,omitempty"`
	MinItems        *int   `json:"minItems,omitempty"`
	MaxItems        *int   `json:"maxItems,omitempty"`
	UniqueItems     bool   `json:"uniqueItems,omitempty"`

	// Object applicators and assertions.
	Properties           map[string]*Ref        `json:"properties,omitempty"`
	PatternProperties    map[string]*Ref        `json:"patternProperties,omitempty"`
	AdditionalProperties *Ref                   `json:"additionalProperties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	MinProperties        *int                   `json:"minProperties,omitempty"`
	MaxProperties        *int                   `json:"maxProperties,omitempty"`
	Dependencies         map[string]*Dependency `json:"dependencies,omitempty"`
	PropertyNames        *Ref                   `json:"propertyNames,omitempty"`

	// Combinators.
	AllOf []*Ref `json:"allOf,omitempty"`
	AnyOf []*Ref `json:"anyOf,omitempty"`
	OneOf []*Ref `json:"oneOf,omitempty"`
	Not   *Ref   `json:"not,omitempty"`

	// Message overrides.
	DeprecationMessage  string `json:"deprecationMessage,omitempty"`
	ErrorMessage        string `json:"errorMessage,omitempty"`
	PatternErrorMessage string `json:"patternErrorMessage,omitempty"`
}

// Ref is a schema reference: either a boolean or a schema object, as allowed
// everywhere a subschema may appear in draft-07.
type Ref struct {
	Bool   *bool
	Schema *Schema
}

// UnmarshalJSON decodes a boolean or an object form.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == 't' || trimmed[0] == 'f') {
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		r.Bool = &b
		return nil
	}
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return err
	}
	r.Schema = s
	return nil
}

// MarshalJSON encodes the boolean or object form back out.
func (r *Ref) MarshalJSON() ([]byte, error) {
	if r.Bool != nil {
		return json.Marshal(*r.Bool)
	}
	return json.Marshal(r.Schema)
}

// Resolve normalizes the reference into a schema object: true becomes the
// empty schema (accept everything), false becomes {"not": {}} (reject
// everything). Returns nil for a nil reference.
func (r *Ref) Resolve() *Schema {
	if r == nil {
		return nil
	}
	if r.Bool != nil {
		if *r.Bool {
			return &Schema{}
		}
		return &Schema{Not: &Ref{Schema: &Schema{}}}
	}
	return r.Schema
}

// IsFalse reports whether the reference is the boolean false schema.
func (r *Ref) IsFalse() bool {
	return r != nil && r.Bool != nil && !*r.Bool
}

// IsBool reports whether the reference is a boolean schema.
func (r *Ref) IsBool() bool {
	return r != nil && r.Bool != nil
}

// TypeSet is the value of the "type" keyword, normalized to a list.
type TypeSet []string

// UnmarshalJSON accepts a single type name or a list of names.
func (t *TypeSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return err
		}
		*t = names
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*t = TypeSet{name}
	return nil
}

// Single reports whether the keyword held exactly one type name.
func (t TypeSet) Single() bool {
	return len(t) == 1
}

// ConstValue wraps an arbitrary JSON value so that the presence of "const"
// can be distinguished from a JSON null value.
type ConstValue struct {
	Value any
}

// UnmarshalJSON decodes the wrapped value.
func (c *ConstValue) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Value)
}

// MarshalJSON encodes the wrapped value.
func (c *ConstValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value)
}

// Exclusive is the value of exclusiveMinimum/exclusiveMaximum: a boolean in
// draft-04 style (modifying minimum/maximum) or a number in draft-06+ style
// (a standalone bound).
type Exclusive struct {
	Bool   *bool
	Number *float64
}

// UnmarshalJSON decodes the boolean or numeric form.
func (e *Exclusive) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == 't' || trimmed[0] == 'f') {
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		e.Bool = &b
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	e.Number = &n
	return nil
}

// MarshalJSON encodes the boolean or numeric form back out.
func (e *Exclusive) MarshalJSON() ([]byte, error) {
	if e.Bool != nil {
		return json.Marshal(*e.Bool)
	}
	return json.Marshal(e.Number)
}

// Items is the value of the "items" keyword: a single schema applied to
// every element, or a positional list of schemas.
type Items struct {
	Schema *Ref
	Tuple  []*Ref
}

// UnmarshalJSON decodes the single-schema or tuple form.
func (it *Items) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &it.Tuple)
	}
	it.Schema = &Ref{}
	return json.Unmarshal(data, it.Schema)
}

// MarshalJSON encodes the single-schema or tuple form back out.
func (it *Items) MarshalJSON() ([]byte, error) {
	if it.Tuple != nil {
		return json.Marshal(it.Tuple)
	}
	return json.Marshal(it.Schema)
}

// Dependency is one entry of the "dependencies" keyword: a list of property
// names that must accompany the key, or a schema the whole object must then
// satisfy.
type Dependency struct {
	Requires []string
	Schema   *Ref
}

// UnmarshalJSON decodes the property-list or schema form.
func (d *Dependency) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &d.Requires)
	}
	d.Schema = &Ref{}
	return json.Unmarshal(data, d.Schema)
}

// MarshalJSON encodes the property-list or schema form back out.
func (d *Dependency) MarshalJSON() ([]byte, error) {
	if d.Requires != nil {
		return json.Marshal(d.Requires)
	}
	return json.Marshal(d.Schema)
}

// FromJSON decodes a schema document from JSON bytes.
func FromJSON(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return s, nil
}

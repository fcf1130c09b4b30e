package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/parser/jsonc"
	"github.com/yaklabco/gojsonlint/pkg/schema"
	"github.com/yaklabco/gojsonlint/pkg/validate"
)

func mustParse(t *testing.T, src string) *jsonast.Node {
	t.Helper()
	result := jsonc.Parse([]byte(src), jsonc.Options{})
	require.NotNil(t, result.Root, "input %q", src)
	require.Empty(t, result.Problems, "input %q", src)
	return result.Root
}

func mustSchema(t *testing.T, src string) *schema.Schema {
	t.Helper()
	s, err := schema.FromJSON([]byte(src))
	require.NoError(t, err)
	return s
}

func validateSrc(t *testing.T, src, schemaSrc string) []jsonast.Problem {
	t.Helper()
	root := mustParse(t, src)
	result := &validate.ValidationResult{}
	validate.Validate(root, mustSchema(t, schemaSrc), result, validate.NoopCollector)
	return result.Problems
}

func TestTypeAssertion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		schemaSrc string
		problems  int
		contains  string
	}{
		{name: "match", src: `"x"`, schemaSrc: `{"type": "string"}`, problems: 0},
		{name: "mismatch", src: `1`, schemaSrc: `{"type": "string"}`, problems: 1, contains: `Incorrect type. Expected "string".`},
		{name: "list match", src: `1`, schemaSrc: `{"type": ["string", "number"]}`, problems: 0},
		{name: "list mismatch", src: `true`, schemaSrc: `{"type": ["string", "number"]}`, problems: 1, contains: "Expected one of string, number."},
		{name: "integer match", src: `5`, schemaSrc: `{"type": "integer"}`, problems: 0},
		{name: "integer exponent", src: `1e3`, schemaSrc: `{"type": "integer"}`, problems: 0},
		{name: "integer mismatch", src: `5.5`, schemaSrc: `{"type": "integer"}`, problems: 1, contains: `Expected "integer".`},
		{name: "number accepts integer", src: `5`, schemaSrc: `{"type": "number"}`, problems: 0},
		{name: "custom message", src: `1`, schemaSrc: `{"type": "string", "errorMessage": "want text"}`, problems: 1, contains: "want text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			problems := validateSrc(t, tt.src, tt.schemaSrc)
			require.Len(t, problems, tt.problems)
			if tt.contains != "" {
				assert.Contains(t, problems[0].Message, tt.contains)
				assert.Equal(t, jsonast.SeverityWarning, problems[0].Severity)
			}
		})
	}
}

func TestValidationContinuesAfterTypeMismatch(t *testing.T) {
	t.Parallel()

	problems := validateSrc(t, `"way too long"`, `{"type": "number", "maxLength": 3}`)
	assert.Len(t, problems, 2)
}

func TestScenarioNoDiagnosticsWithMatchingSchemas(t *testing.T) {
	t.Parallel()

	src := `{"a": 1, "b": 2}`
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"a": {"type": "number"}, "b": {"type": "number"}},
		"required": ["a"]
	}`)

	root := mustParse(t, src)
	result := &validate.ValidationResult{}
	collector := validate.NewCollector(strings.Index(src, "1"), nil)
	validate.Validate(root, s, result, collector)

	assert.Empty(t, result.Problems)

	// The focus is inside the value of "a": the object schema and the
	// number subschema both apply.
	schemas := collector.Schemas()
	var sawOuter, sawNumber bool
	for _, as := range schemas {
		if as.Schema == s {
			sawOuter = true
		}
		if len(as.Schema.Type) == 1 && as.Schema.Type[0] == "number" {
			sawNumber = true
		}
	}
	assert.True(t, sawOuter, "outer schema not collected")
	assert.True(t, sawNumber, "number subschema not collected")
}

func TestArrayKeywords(t *testing.T) {
	t.Parallel()

	t.Run("unique and max items", func(t *testing.T) {
		t.Parallel()
		src := `[1,2,2,3]`
		problems := validateSrc(t, src, `{"type": "array", "items": {"type": "integer"}, "uniqueItems": true, "maxItems": 3}`)
		require.Len(t, problems, 2)
		for _, p := range problems {
			assert.Equal(t, 0, p.Location.Start)
			assert.Equal(t, len(src), p.Location.End)
		}
		assert.Contains(t, problems[0].Message, "Expected 3 or fewer.")
		assert.Contains(t, problems[1].Message, "Array has duplicate items.")
	})

	t.Run("min items", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `[1]`, `{"minItems": 2}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, "Expected 2 or more.")
	})

	t.Run("items schema applied to each", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `[1, "x", 2]`, `{"items": {"type": "number"}}`)
		require.Len(t, problems, 1)
	})

	t.Run("tuple items", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `["a", 1]`, `{"items": [{"type": "string"}, {"type": "number"}]}`)
		assert.Empty(t, problems)
	})

	t.Run("additionalItems false", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `["a", 1, true]`, `{"items": [{"type": "string"}, {"type": "number"}], "additionalItems": false}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, "Expected 2 or fewer.")
	})

	t.Run("additionalItems schema", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `["a", true, true]`, `{"items": [{"type": "string"}], "additionalItems": {"type": "boolean"}}`)
		assert.Empty(t, problems)

		problems = validateSrc(t, `["a", 5]`, `{"items": [{"type": "string"}], "additionalItems": {"type": "boolean"}}`)
		require.Len(t, problems, 1)
	})

	t.Run("additionalItems absent permits extras", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `["a", 1, true]`, `{"items": [{"type": "string"}]}`)
		assert.Empty(t, problems)
	})

	t.Run("contains", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `[1, "x"]`, `{"contains": {"type": "string"}}`)
		assert.Empty(t, problems)

		problems = validateSrc(t, `[1, 2]`, `{"contains": {"type": "string"}}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, "does not contain")
	})
}

func TestContainsProbeDoesNotPolluteCollector(t *testing.T) {
	t.Parallel()

	src := `[1, 2]`
	root := mustParse(t, src)
	s := mustSchema(t, `{"contains": {"type": "number"}}`)

	collector := validate.NewCollector(-1, nil)
	validate.Validate(root, s, &validate.ValidationResult{}, collector)

	for _, as := range collector.Schemas() {
		if len(as.Schema.Type) == 1 && as.Schema.Type[0] == "number" {
			t.Fatalf("contains probe leaked into collector")
		}
	}
}

func TestObjectKeywords(t *testing.T) {
	t.Parallel()

	t.Run("required missing pins to opening brace", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"b": 1}`, `{"required": ["a"]}`)
		require.Len(t, problems, 1)
		assert.Equal(t, jsonast.NewRange(0, 1), problems[0].Location)
		assert.Contains(t, problems[0].Message, `Missing property "a".`)
	})

	t.Run("required missing pins to parent key", func(t *testing.T) {
		t.Parallel()
		src := `{"outer": {}}`
		problems := validateSrc(t, src, `{"properties": {"outer": {"required": ["a"]}}}`)
		require.Len(t, problems, 1)
		assert.Equal(t, strings.Index(src, `"outer"`), problems[0].Location.Start)
		assert.Equal(t, strings.Index(src, `"outer"`)+len(`"outer"`), problems[0].Location.End)
	})

	t.Run("property schema false flags the key", func(t *testing.T) {
		t.Parallel()
		src := `{"a": 1}`
		problems := validateSrc(t, src, `{"properties": {"a": false}}`)
		require.Len(t, problems, 1)
		assert.Equal(t, jsonast.NewRange(1, 4), problems[0].Location)
		assert.Contains(t, problems[0].Message, "Property a is not allowed.")
	})

	t.Run("patternProperties", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"x-one": 1, "other": "s"}`,
			`{"patternProperties": {"^x-": {"type": "number"}}}`)
		assert.Empty(t, problems)

		problems = validateSrc(t, `{"x-one": "nope"}`,
			`{"patternProperties": {"^x-": {"type": "number"}}}`)
		require.Len(t, problems, 1)
	})

	t.Run("patternProperties skips explicit properties", func(t *testing.T) {
		t.Parallel()
		// "x-a" is consumed by properties first; the pattern schema must
		// not re-validate it.
		problems := validateSrc(t, `{"x-a": "s"}`,
			`{"properties": {"x-a": {"type": "string"}}, "patternProperties": {"^x-": {"type": "number"}}}`)
		assert.Empty(t, problems)
	})

	t.Run("additionalProperties false", func(t *testing.T) {
		t.Parallel()
		src := `{"a": 1, "extra": 2}`
		problems := validateSrc(t, src, `{"properties": {"a": {}}, "additionalProperties": false}`)
		require.Len(t, problems, 1)
		assert.Equal(t, strings.Index(src, `"extra"`), problems[0].Location.Start)
		assert.Contains(t, problems[0].Message, "Property extra is not allowed.")
	})

	t.Run("additionalProperties schema", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"a": 1, "extra": "x"}`,
			`{"properties": {"a": {}}, "additionalProperties": {"type": "string"}}`)
		assert.Empty(t, problems)

		problems = validateSrc(t, `{"extra": 5}`,
			`{"additionalProperties": {"type": "string"}}`)
		require.Len(t, problems, 1)
	})

	t.Run("additionalProperties absent permits extras", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"anything": 1}`, `{"properties": {"a": {}}}`)
		assert.Empty(t, problems)
	})

	t.Run("min and max properties", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"a": 1}`, `{"minProperties": 2}`)
		require.Len(t, problems, 1)

		problems = validateSrc(t, `{"a": 1, "b": 2}`, `{"maxProperties": 1}`)
		require.Len(t, problems, 1)
	})

	t.Run("dependencies list", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"credit": "x"}`, `{"dependencies": {"credit": ["billing"]}}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, "missing property billing required by property credit")

		problems = validateSrc(t, `{"credit": "x", "billing": "y"}`, `{"dependencies": {"credit": ["billing"]}}`)
		assert.Empty(t, problems)
	})

	t.Run("dependencies schema revalidates whole object", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"credit": "x"}`,
			`{"dependencies": {"credit": {"required": ["billing"]}}}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, `Missing property "billing".`)
	})

	t.Run("propertyNames", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `{"toolong": 1}`, `{"propertyNames": {"maxLength": 3}}`)
		require.Len(t, problems, 1)

		problems = validateSrc(t, `{"ok": 1}`, `{"propertyNames": {"maxLength": 3}}`)
		assert.Empty(t, problems)
	})
}

func TestNumberKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		schemaSrc string
		problems  int
		contains  string
	}{
		{name: "multipleOf pass", src: `9`, schemaSrc: `{"multipleOf": 3}`, problems: 0},
		{name: "multipleOf fail", src: `10`, schemaSrc: `{"multipleOf": 3}`, problems: 1, contains: "not divisible by 3"},
		{name: "minimum pass", src: `5`, schemaSrc: `{"minimum": 5}`, problems: 0},
		{name: "minimum fail", src: `4`, schemaSrc: `{"minimum": 5}`, problems: 1, contains: "below the minimum of 5"},
		{name: "maximum fail", src: `6`, schemaSrc: `{"maximum": 5}`, problems: 1, contains: "above the maximum of 5"},
		{name: "draft4 exclusive minimum", src: `5`, schemaSrc: `{"minimum": 5, "exclusiveMinimum": true}`, problems: 1, contains: "below the exclusive minimum of 5"},
		{name: "draft4 exclusive false is inclusive", src: `5`, schemaSrc: `{"minimum": 5, "exclusiveMinimum": false}`, problems: 0},
		{name: "draft6 exclusive minimum", src: `5`, schemaSrc: `{"exclusiveMinimum": 5}`, problems: 1, contains: "below the exclusive minimum of 5"},
		{name: "draft6 exclusive minimum pass", src: `6`, schemaSrc: `{"exclusiveMinimum": 5}`, problems: 0},
		{name: "draft4 exclusive maximum", src: `5`, schemaSrc: `{"maximum": 5, "exclusiveMaximum": true}`, problems: 1, contains: "above the exclusive maximum of 5"},
		{name: "draft6 exclusive maximum", src: `5`, schemaSrc: `{"exclusiveMaximum": 5}`, problems: 1},
		{name: "independent exclusive and inclusive", src: `3`, schemaSrc: `{"minimum": 1, "exclusiveMinimum": 4}`, problems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			problems := validateSrc(t, tt.src, tt.schemaSrc)
			require.Len(t, problems, tt.problems)
			if tt.contains != "" {
				assert.Contains(t, problems[0].Message, tt.contains)
			}
		})
	}
}

func TestStringKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		schemaSrc string
		problems  int
		contains  string
	}{
		{name: "minLength fail", src: `"ab"`, schemaSrc: `{"minLength": 3}`, problems: 1, contains: "shorter than the minimum length of 3"},
		{name: "maxLength fail", src: `"abcd"`, schemaSrc: `{"maxLength": 3}`, problems: 1, contains: "longer than the maximum length of 3"},
		{name: "pattern pass", src: `"abc123"`, schemaSrc: `{"pattern": "^[a-z]+[0-9]+$"}`, problems: 0},
		{name: "pattern fail", src: `"123"`, schemaSrc: `{"pattern": "^[a-z]+$"}`, problems: 1, contains: "does not match the pattern"},
		{name: "pattern custom message", src: `"123"`, schemaSrc: `{"pattern": "^[a-z]+$", "patternErrorMessage": "lowercase only"}`, problems: 1, contains: "lowercase only"},
		{name: "email pass", src: `"user@example.com"`, schemaSrc: `{"format": "email"}`, problems: 0},
		{name: "email fail", src: `"2020-01-01"`, schemaSrc: `{"type": "string", "format": "email"}`, problems: 1, contains: "not an e-mail address"},
		{name: "color pass short", src: `"#fff"`, schemaSrc: `{"format": "color-hex"}`, problems: 0},
		{name: "color pass rgba long", src: `"#A1B2C3D4"`, schemaSrc: `{"format": "color-hex"}`, problems: 0},
		{name: "color pass rrggbb", src: `"#a1b2c3"`, schemaSrc: `{"format": "color-hex"}`, problems: 0},
		{name: "color fail", src: `"red"`, schemaSrc: `{"format": "color-hex"}`, problems: 1, contains: "Invalid color format"},
		{name: "uri pass", src: `"https://example.com/x"`, schemaSrc: `{"format": "uri"}`, problems: 0},
		{name: "uri empty", src: `""`, schemaSrc: `{"format": "uri"}`, problems: 1, contains: "URI expected"},
		{name: "uri schemeless", src: `"/just/a/path"`, schemaSrc: `{"format": "uri"}`, problems: 1, contains: "scheme"},
		{name: "uri-reference schemeless", src: `"/just/a/path"`, schemaSrc: `{"format": "uri-reference"}`, problems: 0},
		{name: "uri-reference empty", src: `""`, schemaSrc: `{"format": "uri-reference"}`, problems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			problems := validateSrc(t, tt.src, tt.schemaSrc)
			require.Len(t, problems, tt.problems)
			if tt.contains != "" {
				assert.Contains(t, problems[0].Message, tt.contains)
			}
		})
	}
}

func TestEnumAndConst(t *testing.T) {
	t.Parallel()

	t.Run("enum match", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validateSrc(t, `"b"`, `{"enum": ["a", "b"]}`))
	})

	t.Run("enum mismatch lists values", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `"z"`, `{"enum": ["a", "b"]}`)
		require.Len(t, problems, 1)
		assert.Equal(t, jsonast.CodeEnumValueMismatch, problems[0].Code)
		assert.Contains(t, problems[0].Message, `"a", "b"`)
	})

	t.Run("enum structural equality", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validateSrc(t, `{"b": 2, "a": 1}`, `{"enum": [{"a": 1, "b": 2}]}`))
		assert.Empty(t, validateSrc(t, `[1, [2]]`, `{"enum": [[1, [2]]]}`))
	})

	t.Run("const match and mismatch", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validateSrc(t, `"A"`, `{"const": "A"}`))

		problems := validateSrc(t, `"B"`, `{"const": "A"}`)
		require.Len(t, problems, 1)
		assert.Equal(t, jsonast.CodeEnumValueMismatch, problems[0].Code)
		assert.Contains(t, problems[0].Message, `Value must be "A".`)
	})

	t.Run("const null presence", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validateSrc(t, `null`, `{"const": null}`))
		require.Len(t, validateSrc(t, `1`, `{"const": null}`), 1)
	})
}

func TestCombinators(t *testing.T) {
	t.Parallel()

	t.Run("allOf additive", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `5`, `{"allOf": [{"minimum": 1}, {"maximum": 3}]}`)
		require.Len(t, problems, 1)
	})

	t.Run("not", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `"s"`, `{"not": {"type": "string"}}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, "Matches a schema that is not allowed.")

		assert.Empty(t, validateSrc(t, `1`, `{"not": {"type": "string"}}`))
	})

	t.Run("anyOf with accept-all branch has no diagnostics", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validateSrc(t, `{"x": 1}`, `{"anyOf": [{"type": "string"}, true]}`))
	})

	t.Run("anyOf all reject surfaces best branch", func(t *testing.T) {
		t.Parallel()
		// The object branch validates more property values, so its
		// diagnostics win over the string branch's type error.
		problems := validateSrc(t, `{"a": 1, "b": true}`, `{"anyOf": [
			{"type": "string"},
			{"type": "object", "properties": {"a": {"type": "number"}, "b": {"type": "number"}}}
		]}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, `Expected "number".`)
	})

	t.Run("oneOf single match", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validateSrc(t, `5`, `{"oneOf": [{"type": "number"}, {"type": "string"}]}`))
	})

	t.Run("oneOf ambiguous", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `5`, `{"oneOf": [{"type": "number"}, {"minimum": 0}]}`)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Message, "Matches multiple schemas when only one must validate.")
	})

	t.Run("false schema rejects everything", func(t *testing.T) {
		t.Parallel()
		problems := validateSrc(t, `1`, `{"anyOf": [false]}`)
		require.Len(t, problems, 1)
	})
}

func TestAnyOfEnumUnionMessage(t *testing.T) {
	t.Parallel()

	problems := validateSrc(t, `"z"`, `{"anyOf": [{"enum": ["a", "b"]}, {"enum": ["c"]}]}`)
	require.Len(t, problems, 1)
	assert.Equal(t, jsonast.CodeEnumValueMismatch, problems[0].Code)
	for _, accepted := range []string{`"a"`, `"b"`, `"c"`} {
		assert.Contains(t, problems[0].Message, accepted)
	}
}

func TestOneOfDiscriminator(t *testing.T) {
	t.Parallel()

	src := `{"kind":"A","x":1}`
	schemaSrc := `{"oneOf": [
		{"properties": {"kind": {"const": "A"}, "x": {"type": "integer"}}},
		{"properties": {"kind": {"const": "B"}, "x": {"type": "string"}}}
	]}`

	root := mustParse(t, src)
	s := mustSchema(t, schemaSrc)

	result := &validate.ValidationResult{}
	collector := validate.NewCollector(-1, nil)
	validate.Validate(root, s, result, collector)

	assert.Empty(t, result.Problems)

	// The A branch claimed the object via its singleton const; the B branch
	// must not appear in the associations.
	var sawA, sawB bool
	for _, as := range collector.Schemas() {
		if prop, ok := as.Schema.Properties["kind"]; ok && prop.Schema != nil && prop.Schema.Const != nil {
			switch prop.Schema.Const.Value {
			case "A":
				sawA = true
			case "B":
				sawB = true
			}
		}
	}
	assert.True(t, sawA, "winning branch missing from associations")
	assert.False(t, sawB, "losing branch leaked into associations")
}

func TestAnyOfCleanTieUnionsCollectors(t *testing.T) {
	t.Parallel()

	src := `{"x": 1}`
	root := mustParse(t, src)
	s := mustSchema(t, `{"anyOf": [
		{"title": "first", "type": "object"},
		{"title": "second", "type": "object"}
	]}`)

	collector := validate.NewCollector(-1, nil)
	validate.Validate(root, s, &validate.ValidationResult{}, collector)

	titles := map[string]bool{}
	for _, as := range collector.Schemas() {
		if as.Schema.Title != "" {
			titles[as.Schema.Title] = true
		}
	}
	assert.True(t, titles["first"] && titles["second"],
		"both clean anyOf branches must be collected, got %v", titles)
}

func TestNotInvertsAssociations(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `1`)
	s := mustSchema(t, `{"not": {"title": "banned", "type": "string"}}`)

	collector := validate.NewCollector(-1, nil)
	validate.Validate(root, s, &validate.ValidationResult{}, collector)

	found := false
	for _, as := range collector.Schemas() {
		if as.Schema.Title == "banned" {
			found = true
			assert.True(t, as.Inverted)
		}
	}
	assert.True(t, found)
}

func TestDeprecationFlagsParent(t *testing.T) {
	t.Parallel()

	src := `{"old": 1}`
	problems := validateSrc(t, src, `{"properties": {"old": {"deprecationMessage": "Use new instead."}}}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "Use new instead.", problems[0].Message)
	// The whole property is highlighted, not just the value.
	assert.Equal(t, strings.Index(src, `"old"`), problems[0].Location.Start)
}

func TestFocusedCollectorPrunes(t *testing.T) {
	t.Parallel()

	src := `{"a": 1, "b": 2}`
	root := mustParse(t, src)
	s := mustSchema(t, `{"properties": {"a": {"title": "A"}, "b": {"title": "B"}}}`)

	// Focus inside the value of "b".
	collector := validate.NewCollector(strings.Index(src, "2"), nil)
	validate.Validate(root, s, &validate.ValidationResult{}, collector)

	var sawA, sawB bool
	for _, as := range collector.Schemas() {
		switch as.Schema.Title {
		case "A":
			sawA = true
		case "B":
			sawB = true
		}
	}
	assert.False(t, sawA)
	assert.True(t, sawB)
}

func TestValidateIdempotent(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"a": "x", "b": [1, 1]}`)
	s := mustSchema(t, `{
		"properties": {"a": {"type": "number"}, "b": {"uniqueItems": true}},
		"required": ["c"]
	}`)

	first := &validate.ValidationResult{}
	validate.Validate(root, s, first, validate.NoopCollector)
	second := &validate.ValidationResult{}
	validate.Validate(root, s, second, validate.NoopCollector)

	assert.Equal(t, first.Problems, second.Problems)
	require.NotEmpty(t, first.Problems)
}

func TestBooleanSchemaNormalization(t *testing.T) {
	t.Parallel()

	// properties: {"a": true} counts as a match, {"a": false} rejects.
	assert.Empty(t, validateSrc(t, `{"a": 1}`, `{"properties": {"a": true}}`))
	require.Len(t, validateSrc(t, `{"a": 1}`, `{"properties": {"a": false}}`), 1)
}

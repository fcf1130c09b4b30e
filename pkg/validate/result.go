// Package validate implements JSON Schema (draft-07 subset) validation over
// the position-annotated AST of pkg/jsonast. Validation never aborts: every
// keyword check is independent and additive, and all schema violations are
// reported as warnings. Alongside diagnostics, the validator records which
// schemas applied to which nodes so that editor features can answer
// "what schemas are relevant at this cursor position".
package validate

import "github.com/yaklabco/gojsonlint/pkg/jsonast"

// ValidationResult accumulates the outcome of validating one subtree against
// one schema. The counters drive best-match selection between anyOf/oneOf
// branches.
type ValidationResult struct {
	// Problems contains the schema diagnostics collected so far.
	Problems []jsonast.Problem

	// PropertiesMatches counts object properties that were evaluated
	// against a schema.
	PropertiesMatches int

	// PropertiesValueMatches counts properties whose value validated
	// successfully: no problems, or an exact enum/const match.
	PropertiesValueMatches int

	// PrimaryValueMatches counts properties whose value matched a schema
	// with a singleton enum/const. Such a property acts as the
	// discriminator of a tagged union, so this is a strong tie-breaker.
	PrimaryValueMatches int

	// EnumValueMatch is true when the subject satisfied an enum or const.
	EnumValueMatch bool

	// EnumValues is the list of accepted values when an enum/const was
	// active, kept so sibling branches can merge their accepted sets into
	// one message.
	EnumValues []any
}

// HasProblems reports whether any diagnostics were collected.
func (r *ValidationResult) HasProblems() bool {
	return len(r.Problems) > 0
}

// Merge appends the other result's problems.
func (r *ValidationResult) Merge(other *ValidationResult) {
	r.Problems = append(r.Problems, other.Problems...)
}

// MergeEnumValues folds the other result's accepted enum values into this
// one when both rejected the subject, and rewrites any enum-mismatch
// diagnostics so the user sees the union of all accepted values.
func (r *ValidationResult) MergeEnumValues(other *ValidationResult) {
	if r.EnumValueMatch || other.EnumValueMatch || r.EnumValues == nil || other.EnumValues == nil {
		return
	}
	r.EnumValues = append(r.EnumValues, other.EnumValues...)
	for i := range r.Problems {
		if r.Problems[i].Code == jsonast.CodeEnumValueMismatch {
			r.Problems[i].Message = enumMismatchMessage(r.EnumValues)
		}
	}
}

// MergePropertyMatch folds a property value's validation result into the
// parent object's result, updating the match counters.
func (r *ValidationResult) MergePropertyMatch(prop *ValidationResult) {
	r.Merge(prop)
	r.PropertiesMatches++
	if prop.EnumValueMatch || !prop.HasProblems() {
		r.PropertiesValueMatches++
	}
	if prop.EnumValueMatch && len(prop.EnumValues) == 1 {
		r.PrimaryValueMatches++
	}
}

// Compare orders two results by match quality: positive when r is the
// better match, negative when other is, zero on a tie. The ordering is
// lexicographic over: problem-free beats dirty, enum match beats none, then
// the primary, value and attempted property counters in turn.
func (r *ValidationResult) Compare(other *ValidationResult) int {
	if hp, ohp := r.HasProblems(), other.HasProblems(); hp != ohp {
		if hp {
			return -1
		}
		return 1
	}
	if r.EnumValueMatch != other.EnumValueMatch {
		if other.EnumValueMatch {
			return -1
		}
		return 1
	}
	if r.PrimaryValueMatches != other.PrimaryValueMatches {
		return r.PrimaryValueMatches - other.PrimaryValueMatches
	}
	if r.PropertiesValueMatches != other.PropertiesValueMatches {
		return r.PropertiesValueMatches - other.PropertiesValueMatches
	}
	return r.PropertiesMatches - other.PropertiesMatches
}

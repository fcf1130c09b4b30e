package validate

import (
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/schema"
)

// Validate walks the schema over the subtree rooted at node, appending
// schema diagnostics to result and node→schema associations to collector.
// It is re-entrant and never mutates the AST; callers validating the same
// document concurrently must supply their own result and collector.
func Validate(node *jsonast.Node, s *schema.Schema, result *ValidationResult, collector Collector) {
	if node == nil || s == nil || !collector.Include(node) {
		return
	}
	if node.Kind == jsonast.NodeProperty {
		Validate(node.Value, s, result, collector)
		return
	}

	switch node.Kind {
	case jsonast.NodeObject:
		validateObject(node, s, result, collector)
	case jsonast.NodeArray:
		validateArray(node, s, result, collector)
	case jsonast.NodeString:
		validateString(node, s, result)
	case jsonast.NodeNumber:
		validateNumber(node, s, result)
	}

	validateCommon(node, s, result, collector)
	collector.Add(ApplicableSchema{Node: node, Schema: s})
}

// validateCommon handles the kind-independent keywords: type, the
// combinators, enum/const and deprecation.
func validateCommon(node *jsonast.Node, s *schema.Schema, result *ValidationResult, collector Collector) {
	if len(s.Type) > 0 {
		matched := false
		for _, name := range s.Type {
			if matchesType(node, name) {
				matched = true
				break
			}
		}
		if !matched {
			msg := s.ErrorMessage
			if msg == "" {
				if s.Type.Single() {
					msg = fmt.Sprintf("Incorrect type. Expected %q.", s.Type[0])
				} else {
					msg = fmt.Sprintf("Incorrect type. Expected one of %s.", strings.Join(s.Type, ", "))
				}
			}
			warnAt(result, node.Range(), jsonast.CodeUndefined, msg)
		}
	}

	for _, ref := range s.AllOf {
		if sub := ref.Resolve(); sub != nil {
			Validate(node, sub, result, collector)
		}
	}

	if notSchema := s.Not.Resolve(); notSchema != nil {
		subResult := &ValidationResult{}
		subCollector := collector.NewSub()
		Validate(node, notSchema, subResult, subCollector)
		if !subResult.HasProblems() {
			warnAt(result, node.Range(), jsonast.CodeUndefined, "Matches a schema that is not allowed.")
		}
		for _, ms := range subCollector.Schemas() {
			ms.Inverted = !ms.Inverted
			collector.Add(ms)
		}
	}

	if len(s.AnyOf) > 0 {
		validateAlternatives(node, s.AnyOf, false, result, collector)
	}
	if len(s.OneOf) > 0 {
		validateAlternatives(node, s.OneOf, true, result, collector)
	}

	if s.Enum != nil {
		val := jsonast.Value(node)
		matched := false
		for _, accepted := range s.Enum {
			if equal(val, accepted) {
				matched = true
				break
			}
		}
		result.EnumValues = s.Enum
		result.EnumValueMatch = matched
		if !matched {
			msg := s.ErrorMessage
			if msg == "" {
				msg = enumMismatchMessage(s.Enum)
			}
			warnAt(result, node.Range(), jsonast.CodeEnumValueMismatch, msg)
		}
	}

	if s.Const != nil {
		val := jsonast.Value(node)
		if !equal(val, s.Const.Value) {
			msg := s.ErrorMessage
			if msg == "" {
				msg = fmt.Sprintf("Value must be %s.", stringifyValue(s.Const.Value))
			}
			warnAt(result, node.Range(), jsonast.CodeEnumValueMismatch, msg)
			result.EnumValueMatch = false
		} else {
			result.EnumValueMatch = true
		}
		result.EnumValues = []any{s.Const.Value}
	}

	if s.DeprecationMessage != "" && node.Parent != nil {
		// Flag the enclosing property, not just the value.
		warnAt(result, node.Parent.Range(), jsonast.CodeUndefined, s.DeprecationMessage)
	}
}

// matchesType reports whether the node satisfies the given type name.
// "integer" is a virtual subtype of "number", satisfied when the literal
// had no fraction part.
func matchesType(node *jsonast.Node, name string) bool {
	if name == "integer" {
		return node.Kind == jsonast.NodeNumber && node.IsInteger
	}
	return name == node.Kind.TypeName()
}

// validateAlternatives evaluates every branch of an anyOf/oneOf into its own
// result and sub-collector, then merges the best match into the parent. When
// no branch validates cleanly, the best match is the branch whose
// diagnostics most plausibly reflect the user's intent, per
// ValidationResult.Compare. With maxOneMatch (oneOf), two clean branches
// produce an ambiguity warning; without it (anyOf), clean ties union their
// collectors so editor features see all equally-applicable schemas.
func validateAlternatives(node *jsonast.Node, alternatives []*schema.Ref, maxOneMatch bool, result *ValidationResult, collector Collector) {
	type branch struct {
		schema    *schema.Schema
		result    *ValidationResult
		collector Collector
	}

	cleanMatches := 0
	var best *branch

	for _, ref := range alternatives {
		sub := ref.Resolve()
		if sub == nil {
			continue
		}
		subResult := &ValidationResult{}
		subCollector := collector.NewSub()
		Validate(node, sub, subResult, subCollector)

		if !subResult.HasProblems() {
			cleanMatches++
		}
		switch {
		case best == nil:
			best = &branch{schema: sub, result: subResult, collector: subCollector}
		case !maxOneMatch && !subResult.HasProblems() && !best.result.HasProblems():
			// Equally good clean matches: union the collectors and pool the
			// property counters.
			best.collector.Merge(subCollector)
			best.result.PropertiesMatches += subResult.PropertiesMatches
			best.result.PropertiesValueMatches += subResult.PropertiesValueMatches
		default:
			cmp := subResult.Compare(best.result)
			if cmp > 0 {
				best = &branch{schema: sub, result: subResult, collector: subCollector}
			} else if cmp == 0 {
				best.collector.Merge(subCollector)
				best.result.MergeEnumValues(subResult)
			}
		}
	}

	if cleanMatches > 1 && maxOneMatch {
		warnAt(result, jsonast.NewRange(node.Start, node.Start+1), jsonast.CodeUndefined,
			"Matches multiple schemas when only one must validate.")
	}
	if best != nil {
		result.Merge(best.result)
		result.PropertiesMatches += best.result.PropertiesMatches
		result.PropertiesValueMatches += best.result.PropertiesValueMatches
		collector.Merge(best.collector)
	}
}

func validateNumber(node *jsonast.Node, s *schema.Schema, result *ValidationResult) {
	val := node.NumberValue

	// Floating-point modulo; results for fractional divisors are
	// best-effort.
	if s.MultipleOf != nil && math.Mod(val, *s.MultipleOf) != 0 {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Value is not divisible by %v.", *s.MultipleOf))
	}

	if limit := exclusiveLimit(s.Minimum, s.ExclusiveMinimum); limit != nil && val <= *limit {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Value is below the exclusive minimum of %v.", *limit))
	}
	if limit := exclusiveLimit(s.Maximum, s.ExclusiveMaximum); limit != nil && val >= *limit {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Value is above the exclusive maximum of %v.", *limit))
	}
	if limit := inclusiveLimit(s.Minimum, s.ExclusiveMinimum); limit != nil && val < *limit {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Value is below the minimum of %v.", *limit))
	}
	if limit := inclusiveLimit(s.Maximum, s.ExclusiveMaximum); limit != nil && val > *limit {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Value is above the maximum of %v.", *limit))
	}
}

// exclusiveLimit resolves the effective exclusive bound: a numeric
// exclusiveMinimum/Maximum stands alone (draft-06+); a boolean true turns
// the corresponding minimum/maximum exclusive (draft-04).
func exclusiveLimit(limit *float64, exclusive *schema.Exclusive) *float64 {
	if exclusive == nil {
		return nil
	}
	if exclusive.Number != nil {
		return exclusive.Number
	}
	if exclusive.Bool != nil && *exclusive.Bool {
		return limit
	}
	return nil
}

// inclusiveLimit suppresses the non-exclusive bound when a boolean-true
// exclusive keyword claimed it.
func inclusiveLimit(limit *float64, exclusive *schema.Exclusive) *float64 {
	if exclusive != nil && exclusive.Bool != nil && *exclusive.Bool {
		return nil
	}
	return limit
}

func validateString(node *jsonast.Node, s *schema.Schema, result *ValidationResult) {
	value := node.StringValue
	length := len([]rune(value))

	if s.MinLength != nil && length < *s.MinLength {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("String is shorter than the minimum length of %d.", *s.MinLength))
	}
	if s.MaxLength != nil && length > *s.MaxLength {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("String is longer than the maximum length of %d.", *s.MaxLength))
	}

	if s.Pattern != "" {
		if re, err := regexp.Compile(s.Pattern); err == nil && !re.MatchString(value) {
			warnAt(result, node.Range(), jsonast.CodeUndefined,
				overrideMessage(s, fmt.Sprintf("String does not match the pattern of %q.", s.Pattern)))
		}
	}

	switch s.Format {
	case "uri", "uri-reference":
		if detail := checkURI(value, s.Format == "uri"); detail != "" {
			warnAt(result, node.Range(), jsonast.CodeUndefined,
				overrideMessage(s, fmt.Sprintf("String is not a URI: %s", detail)))
		}
	case "email":
		if value == "" || !emailPattern.MatchString(value) {
			warnAt(result, node.Range(), jsonast.CodeUndefined,
				overrideMessage(s, "String is not an e-mail address."))
		}
	case "color-hex":
		if value == "" || !colorHexPattern.MatchString(value) {
			warnAt(result, node.Range(), jsonast.CodeUndefined,
				overrideMessage(s, "Invalid color format. Use #RGB, #RGBA, #RRGGBB or #RRGGBBAA."))
		}
	}
}

func validateArray(node *jsonast.Node, s *schema.Schema, result *ValidationResult, collector Collector) {
	items := node.Items

	if s.Items != nil {
		if s.Items.Tuple != nil {
			tuple := s.Items.Tuple
			for i, ref := range tuple {
				if i >= len(items) {
					break
				}
				itemResult := &ValidationResult{}
				Validate(items[i], ref.Resolve(), itemResult, collector)
				result.MergePropertyMatch(itemResult)
			}
			if len(items) > len(tuple) {
				switch {
				case s.AdditionalItems != nil && !s.AdditionalItems.IsBool():
					sub := s.AdditionalItems.Resolve()
					for i := len(tuple); i < len(items); i++ {
						itemResult := &ValidationResult{}
						Validate(items[i], sub, itemResult, collector)
						result.MergePropertyMatch(itemResult)
					}
				case s.AdditionalItems.IsFalse():
					warnAt(result, node.Range(), jsonast.CodeUndefined,
						fmt.Sprintf("Array has too many items according to schema. Expected %d or fewer.", len(tuple)))
				}
			}
		} else if sub := s.Items.Schema.Resolve(); sub != nil {
			for _, item := range items {
				itemResult := &ValidationResult{}
				Validate(item, sub, itemResult, collector)
				result.MergePropertyMatch(itemResult)
			}
		}
	}

	if containsSchema := s.Contains.Resolve(); containsSchema != nil {
		doesContain := false
		for _, item := range items {
			itemResult := &ValidationResult{}
			Validate(item, containsSchema, itemResult, NoopCollector)
			if !itemResult.HasProblems() {
				doesContain = true
				break
			}
		}
		if !doesContain {
			warnAt(result, node.Range(), jsonast.CodeUndefined, "Array does not contain required item.")
		}
	}

	if s.MinItems != nil && len(items) < *s.MinItems {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Array has too few items. Expected %d or more.", *s.MinItems))
	}
	if s.MaxItems != nil && len(items) > *s.MaxItems {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Array has too many items. Expected %d or fewer.", *s.MaxItems))
	}

	if s.UniqueItems {
		// Quadratic scan over projected values; item counts are expected to
		// be small.
		values := make([]any, len(items))
		for i, item := range items {
			values[i] = jsonast.Value(item)
		}
		duplicates := false
	outer:
		for i := range values {
			for j := i + 1; j < len(values); j++ {
				if equal(values[i], values[j]) {
					duplicates = true
					break outer
				}
			}
		}
		if duplicates {
			warnAt(result, node.Range(), jsonast.CodeUndefined, "Array has duplicate items.")
		}
	}
}

func validateObject(node *jsonast.Node, s *schema.Schema, result *ValidationResult, collector Collector) {
	// Value node per key; nil when parsing recovered from a missing value.
	// Duplicate keys resolve to the last occurrence, even when that
	// occurrence has no value (the value projection skips such properties).
	seen := make(map[string]*jsonast.Node, len(node.Items))
	unprocessed := make([]string, 0, len(node.Items))
	for _, prop := range node.Items {
		if prop.Key == nil {
			continue
		}
		seen[prop.Key.StringValue] = prop.Value
		unprocessed = append(unprocessed, prop.Key.StringValue)
	}

	present := func(name string) bool {
		v, ok := seen[name]
		return ok && v != nil
	}

	for _, name := range s.Required {
		if !present(name) {
			// Pin to the enclosing property key when this object is itself
			// a property value, otherwise to the opening brace.
			loc := jsonast.NewRange(node.Start, node.Start+1)
			if node.Parent != nil && node.Parent.Kind == jsonast.NodeProperty && node.Parent.Key != nil {
				loc = node.Parent.Key.Range()
			}
			warnAt(result, loc, jsonast.CodeUndefined, fmt.Sprintf("Missing property %q.", name))
		}
	}

	validateProperty := func(name string, ref *schema.Ref) {
		child := seen[name]
		if child == nil {
			return
		}
		if ref.IsBool() {
			if ref.IsFalse() {
				keyNode := child.Parent.Key
				msg := s.ErrorMessage
				if msg == "" {
					msg = fmt.Sprintf("Property %s is not allowed.", name)
				}
				warnAt(result, keyNode.Range(), jsonast.CodeUndefined, msg)
			} else {
				result.PropertiesMatches++
				result.PropertiesValueMatches++
			}
			return
		}
		propResult := &ValidationResult{}
		Validate(child, ref.Resolve(), propResult, collector)
		result.MergePropertyMatch(propResult)
	}

	if len(s.Properties) > 0 {
		for _, name := range slices.Sorted(maps.Keys(s.Properties)) {
			unprocessed = removeAll(unprocessed, name)
			validateProperty(name, s.Properties[name])
		}
	}

	if len(s.PatternProperties) > 0 {
		for _, pattern := range slices.Sorted(maps.Keys(s.PatternProperties)) {
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			// Iterate a snapshot so explicit properties and earlier pattern
			// matches are not double-counted.
			for _, name := range slices.Clone(unprocessed) {
				if !re.MatchString(name) {
					continue
				}
				unprocessed = removeAll(unprocessed, name)
				validateProperty(name, s.PatternProperties[pattern])
			}
		}
	}

	switch {
	case s.AdditionalProperties != nil && !s.AdditionalProperties.IsBool():
		sub := s.AdditionalProperties.Resolve()
		for _, name := range unprocessed {
			if child := seen[name]; child != nil {
				propResult := &ValidationResult{}
				Validate(child, sub, propResult, collector)
				result.MergePropertyMatch(propResult)
			}
		}
	case s.AdditionalProperties.IsFalse():
		for _, name := range unprocessed {
			if child := seen[name]; child != nil {
				msg := s.ErrorMessage
				if msg == "" {
					msg = fmt.Sprintf("Property %s is not allowed.", name)
				}
				warnAt(result, child.Parent.Key.Range(), jsonast.CodeUndefined, msg)
			}
		}
	}

	if s.MaxProperties != nil && len(node.Items) > *s.MaxProperties {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Object has more properties than limit of %d.", *s.MaxProperties))
	}
	if s.MinProperties != nil && len(node.Items) < *s.MinProperties {
		warnAt(result, node.Range(), jsonast.CodeUndefined,
			fmt.Sprintf("Object has fewer properties than the required number of %d", *s.MinProperties))
	}

	if len(s.Dependencies) > 0 {
		for _, key := range slices.Sorted(maps.Keys(s.Dependencies)) {
			if !present(key) {
				continue
			}
			dep := s.Dependencies[key]
			if dep == nil {
				continue
			}
			if dep.Requires != nil {
				for _, requiredProp := range dep.Requires {
					if !present(requiredProp) {
						warnAt(result, node.Range(), jsonast.CodeUndefined,
							fmt.Sprintf("Object is missing property %s required by property %s.", requiredProp, key))
					} else {
						result.PropertiesValueMatches++
					}
				}
			} else if sub := dep.Schema.Resolve(); sub != nil {
				// Schema-form dependency re-validates the whole object.
				propResult := &ValidationResult{}
				Validate(node, sub, propResult, collector)
				result.MergePropertyMatch(propResult)
			}
		}
	}

	if propertyNames := s.PropertyNames.Resolve(); propertyNames != nil {
		for _, prop := range node.Items {
			if prop.Key != nil {
				Validate(prop.Key, propertyNames, result, NoopCollector)
			}
		}
	}
}

func warnAt(result *ValidationResult, loc jsonast.Range, code jsonast.ErrorCode, message string) {
	result.Problems = append(result.Problems, jsonast.Problem{
		Location: loc,
		Severity: jsonast.SeverityWarning,
		Code:     code,
		Message:  message,
	})
}

// overrideMessage applies the schema's message overrides for pattern and
// format failures.
func overrideMessage(s *schema.Schema, fallback string) string {
	if s.PatternErrorMessage != "" {
		return s.PatternErrorMessage
	}
	if s.ErrorMessage != "" {
		return s.ErrorMessage
	}
	return fallback
}

func enumMismatchMessage(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, stringifyValue(v))
	}
	return fmt.Sprintf("Value is not accepted. Valid values: %s.", strings.Join(parts, ", "))
}

func stringifyValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func removeAll(names []string, name string) []string {
	filtered := names[:0]
	for _, n := range names {
		if n != name {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

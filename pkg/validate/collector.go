package validate

import (
	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/schema"
)

// ApplicableSchema records that a schema applied to a node during
// validation. Inverted marks associations recorded under an odd number of
// "not" keywords.
type ApplicableSchema struct {
	Node     *jsonast.Node
	Schema   *schema.Schema
	Inverted bool
}

// Collector is a sink for node→schema associations. Include doubles as the
// recursion gate: when it returns false for a node, validation of that
// subtree is skipped entirely.
type Collector interface {
	// Schemas returns the recorded associations.
	Schemas() []ApplicableSchema

	// Add records one association.
	Add(s ApplicableSchema)

	// Merge folds a sub-collector's associations in, used when a combinator
	// branch wins.
	Merge(other Collector)

	// Include reports whether the node is of interest.
	Include(node *jsonast.Node) bool

	// NewSub creates an isolated collector for a combinator branch.
	NewSub() Collector
}

// NewCollector creates a focused collector. With a non-negative focusOffset,
// only nodes whose range contains the offset are of interest; exclude, when
// non-nil, removes one specific node from consideration.
func NewCollector(focusOffset int, exclude *jsonast.Node) Collector {
	return &schemaCollector{focusOffset: focusOffset, exclude: exclude}
}

type schemaCollector struct {
	schemas     []ApplicableSchema
	focusOffset int
	exclude     *jsonast.Node
}

func (c *schemaCollector) Schemas() []ApplicableSchema {
	return c.schemas
}

func (c *schemaCollector) Add(s ApplicableSchema) {
	c.schemas = append(c.schemas, s)
}

func (c *schemaCollector) Merge(other Collector) {
	for _, s := range other.Schemas() {
		if c.focusOffset >= 0 && !s.Node.Contains(c.focusOffset, false) {
			continue
		}
		c.schemas = append(c.schemas, s)
	}
}

func (c *schemaCollector) Include(node *jsonast.Node) bool {
	if c.focusOffset >= 0 && !node.Contains(c.focusOffset, false) {
		return false
	}
	return node != c.exclude
}

// NewSub drops the focus filter: a branch must be explored completely for
// its score to be comparable, and its associations only surface if the
// branch wins the merge.
func (c *schemaCollector) NewSub() Collector {
	return &schemaCollector{focusOffset: -1, exclude: c.exclude}
}

// NoopCollector accepts nothing and includes everything. Used when only
// diagnostics are wanted, and for the propertyNames and contains probes so
// they do not pollute hover associations.
var NoopCollector Collector = noopCollector{}

type noopCollector struct{}

func (noopCollector) Schemas() []ApplicableSchema { return nil }
func (noopCollector) Add(ApplicableSchema)        {}
func (noopCollector) Merge(Collector)             {}
func (noopCollector) Include(*jsonast.Node) bool  { return true }
func (noopCollector) NewSub() Collector           { return NoopCollector }

package jsonast

import (
	"strconv"
	"strings"
)

// Segment is one step of a path into the document: a property name or an
// array index.
type Segment struct {
	// Name is the property name. Empty for array index segments.
	Name string

	// Index is the zero-based array index. -1 for property name segments.
	Index int
}

// IsIndex reports whether the segment is an array index.
func (s Segment) IsIndex() bool {
	return s.Index >= 0
}

// String renders the segment for display.
func (s Segment) String() string {
	if s.IsIndex() {
		return strconv.Itoa(s.Index)
	}
	return s.Name
}

// Path is the sequence of segments from the document root to a node.
type Path []Segment

// Pointer renders the path as a JSON Pointer (for example /items/2/price).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex() {
			b.WriteString(strconv.Itoa(seg.Index))
		} else {
			r := strings.NewReplacer("~", "~0", "/", "~1")
			b.WriteString(r.Replace(seg.Name))
		}
	}
	return b.String()
}

// PathOf returns the path from the root to the given node. Segments are
// contributed by the containers along the way: descending into a property
// adds the key name, descending into an array adds the item index. The root
// and property nodes themselves contribute nothing.
func PathOf(n *Node) Path {
	if n == nil || n.Parent == nil {
		return Path{}
	}
	path := PathOf(n.Parent)
	switch n.Parent.Kind {
	case NodeProperty:
		if n.Parent.Key != nil {
			path = append(path, Segment{Name: n.Parent.Key.StringValue, Index: -1})
		}
	case NodeArray:
		for i, item := range n.Parent.Items {
			if item == n {
				path = append(path, Segment{Index: i})
				break
			}
		}
	}
	return path
}

// NodeAtOffset returns the deepest node whose range contains the offset, or
// nil when the offset falls outside the root. With endInclusive, a node
// whose End equals the offset also qualifies. Sibling ranges are disjoint
// and ordered, so the scan stops at the first child starting past the
// offset.
func NodeAtOffset(root *Node, offset int, endInclusive bool) *Node {
	if root == nil || !root.Contains(offset, endInclusive) {
		return nil
	}
	for _, child := range root.Children() {
		if child.Start > offset {
			break
		}
		if found := NodeAtOffset(child, offset, endInclusive); found != nil {
			return found
		}
	}
	return root
}

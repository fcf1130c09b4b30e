package jsonast

// VisitFunc is the callback for Visit. Returning false prunes the subtree:
// the node's children are not visited, but the walk continues with the
// node's siblings.
type VisitFunc func(n *Node) bool

// Visit performs a pre-order traversal of the AST starting at root.
// Property nodes visit their key node before their value node.
func Visit(root *Node, fn VisitFunc) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children() {
		Visit(child, fn)
	}
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node
	Visit(root, func(node *Node) bool {
		if predicate(node) {
			result = append(result, node)
		}
		return true
	})
	return result
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

package jsonast

// Value projects the subtree rooted at n to a plain Go value: objects become
// map[string]any (properties without a value are omitted, duplicate keys
// resolve to the last occurrence), arrays become []any, and scalars become
// nil, bool, float64 or string.
func Value(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case NodeNull:
		return nil
	case NodeBoolean:
		return n.BoolValue
	case NodeNumber:
		return n.NumberValue
	case NodeString:
		return n.StringValue
	case NodeArray:
		items := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, Value(item))
		}
		return items
	case NodeObject:
		obj := make(map[string]any, len(n.Items))
		for _, prop := range n.Items {
			if prop.Key == nil || prop.Value == nil {
				continue
			}
			obj[prop.Key.StringValue] = Value(prop.Value)
		}
		return obj
	case NodeProperty:
		return Value(n.Value)
	default:
		return nil
	}
}

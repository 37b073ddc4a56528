package wordtree

// Reserved symbols of the serialized tree.
const (
	TerminationSymbol rune = 0 // closes the current branch
	WordEndSymbol     rune = 1 // a word ends at the current node
)

// Node is one symbol of the tree. Each node exclusively owns its children,
// which keep the order they were added in.
type Node struct {
	// Value is the node symbol; it is TerminationSymbol for the root.
	Value        rune
	WordEndsHere bool
	Children     []*Node
}

// Child returns the child holding r, or nil.
func (n *Node) Child(r rune) *Node {
	for _, c := range n.Children {
		if c.Value == r {
			return c
		}
	}
	return nil
}

// Equal reports whether both subtrees hold the same symbols, word ends and
// child order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Value != other.Value || n.WordEndsHere != other.WordEndsHere {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

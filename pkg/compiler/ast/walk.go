package ast

// IsNil reports whether n is nil or a nil pointer to one of the variants.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Plus:
		return n == nil
	case *Mult:
		return n == nil
	case *Int:
		return n == nil
	case *Call:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	if IsNil(n) {
		return nil
	}
	switch n := n.(type) {
	case *Plus:
		return []Node{n.Left, n.Right}
	case *Mult:
		return []Node{n.Left, n.Right}
	case *Call:
		return []Node{n.Callee, n.Arg}
	}
	return nil
}

// Depth is the number of nodes on the longest root-to-leaf path.
func Depth(n Node) int {
	if IsNil(n) {
		return 0
	}
	max := 0
	for _, c := range Children(n) {
		if d := Depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

package tree

// Preorder calls f for n and all its descendants in document order.
// Traversal stops descending into a node for which f returns false.
func Preorder(n Node, f func(Node) bool) {
	if n == nil {
		return
	}

	stack := []Node{n}
	for len(stack) > 0 {
		last := len(stack) - 1
		cur := stack[last]
		stack = stack[:last]

		if !f(cur) {
			continue
		}

		// Push in reverse so that the first child pops first.
		children := cur.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}
}

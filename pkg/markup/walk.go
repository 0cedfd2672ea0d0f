package markup

import "errors"

// WalkFunc is called for each node during Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal starting at root. If walkFunc returns
// an error the walk stops and returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// WalkWithContext calls enter before and leave after visiting a node's
// children. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for _, child := range root.Children {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		return leave(root)
	}
	return nil
}

// FindAll returns all nodes matching the predicate in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck // the callback never fails
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck // errStopWalk is expected
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// Unclosed returns every element that was recovered without a matching end.
func Unclosed(doc *Document) []*Node {
	return FindAll(doc.Root, func(n *Node) bool {
		return !n.IsRoot() && !n.Closed
	})
}

var errStopWalk = errors.New("stop walk")

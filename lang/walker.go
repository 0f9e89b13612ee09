package lang

import (
	"log/slog"
)

// DefaultMaxDepth is the default maximum nesting depth accepted by the
// parser and the walker. Deeper trees fail closed instead of exhausting the
// call stack.
var DefaultMaxDepth = 100

// Examiner is a pluggable visitor driven by a Walker.
//
// Examine is invoked once per visited node in pre-order. Returning false
// prunes the node's children from the traversal; the Walker otherwise
// descends into every non-tag child left to right.
type Examiner interface {
	Examine(n *Node) bool
}

// Walker traverses an expression tree in deterministic pre-order and
// delegates per-node work to an Examiner.
//
// A Walker holds no traversal state: the same value may drive any number of
// sequential traversals with different roots and examiners. A single
// traversal runs on one goroutine; concurrent traversals must use distinct
// Examiner instances.
type Walker struct {
	// MaxDepth bounds the traversal depth. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Walk visits every reachable node of the tree rooted at root exactly once,
// in pre-order (a node, then each non-tag child left to right), invoking
// x.Examine at each node. Tag children are never dispatched as
// sub-expressions; the enclosing call node accounts for them.
//
// All observable effect is through the Examiner. Walk reports an error only
// for contract violations: a nil root or a tree deeper than MaxDepth.
func (w Walker) Walk(root *Node, x Examiner) error {
	if root == nil {
		return ErrInvalidNode.With(slog.String("reason", "nil root"))
	}

	limit := w.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}

	return walk(root, x, 0, limit)
}

func walk(n *Node, x Examiner, depth, limit int) error {
	if depth >= limit {
		return ErrMaxDepthExceeded.
			With(
				slog.Int("depth", depth),
				slog.Int("max_depth", limit),
			)
	}

	if !x.Examine(n) {
		return nil
	}

	for i := range n.Arity() {
		if n.TagChild(i) {
			continue
		}

		err := walk(n.Child(i), x, depth+1, limit)
		if err != nil {
			return err
		}
	}

	return nil
}

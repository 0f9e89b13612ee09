package lang

import (
	"strconv"
	"strings"
)

// Kind indicates the kind of expression node.
type Kind int

const (
	// KindNumber is a numeric literal.
	KindNumber Kind = iota

	// KindTag is a string-literal selector argument to a function call.
	// A tag is not a sub-expression; walkers must not traverse it as one.
	KindTag

	// KindVar is a bare-name variable reference.
	KindVar

	// KindCall is a named function call with an ordered argument list.
	KindCall

	// KindOp is an operator application (unary, binary, or conditional).
	KindOp
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"

	case KindTag:
		return "Tag"

	case KindVar:
		return "Var"

	case KindCall:
		return "Call"

	case KindOp:
		return "Op"

	default:
		return "Unknown"
	}
}

// Node is one node of a parsed expression tree.
//
// Nodes are immutable after construction: the child sequence is fixed, and a
// per-child marker records which argument positions carry tag literals rather
// than sub-expressions. Walkers and examiners borrow the tree without taking
// ownership and never mutate it.
type Node struct {
	kind     Kind
	name     string  // function name, variable name, or operator symbol
	num      float64 // numeric literal value
	str      string  // tag literal text
	children []*Node
	tags     []bool // per-child tag marker, aligned with children
}

// NewNumber returns a numeric literal node.
func NewNumber(v float64) *Node {
	return &Node{kind: KindNumber, num: v}
}

// NewTag returns a tag (string literal) node. Tags have no children.
func NewTag(s string) *Node {
	return &Node{kind: KindTag, str: s}
}

// NewVar returns a variable reference node.
func NewVar(name string) *Node {
	return &Node{kind: KindVar, name: name}
}

// NewCall returns a call node with the given arguments.
// Argument positions holding tag nodes are marked as tag children.
func NewCall(name string, args ...*Node) *Node {
	return &Node{
		kind:     KindCall,
		name:     name,
		children: args,
		tags:     tagMarks(args),
	}
}

// NewOp returns an operator application node.
func NewOp(op string, operands ...*Node) *Node {
	return &Node{
		kind:     KindOp,
		name:     op,
		children: operands,
		tags:     tagMarks(operands),
	}
}

// tagMarks computes the per-position tag markers for a child sequence.
func tagMarks(children []*Node) []bool {
	if len(children) == 0 {
		return nil
	}

	marks := make([]bool, len(children))
	for i, c := range children {
		marks[i] = c != nil && c.kind == KindTag
	}

	return marks
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the function name, variable name, or operator symbol.
// It is empty for literal nodes.
func (n *Node) Name() string { return n.name }

// Number returns the numeric literal value of a KindNumber node.
func (n *Node) Number() float64 { return n.num }

// Tag returns the literal text of a KindTag node.
func (n *Node) Tag() string { return n.str }

// Arity returns the number of children.
func (n *Node) Arity() int { return len(n.children) }

// Child returns the i-th child, i in [0, Arity()).
func (n *Node) Child(i int) *Node { return n.children[i] }

// TagChild reports whether child position i carries a tag literal rather
// than a sub-expression.
func (n *Node) TagChild(i int) bool { return n.tags[i] }

// String renders the node as expression-like text.
func (n *Node) String() string {
	switch n.kind {
	case KindNumber:
		return strconv.FormatFloat(n.num, 'g', -1, 64)

	case KindTag:
		return strconv.Quote(n.str)

	case KindVar:
		return n.name

	case KindCall:
		args := make([]string, len(n.children))
		for i, c := range n.children {
			args[i] = c.String()
		}

		return n.name + "(" + strings.Join(args, ", ") + ")"

	case KindOp:
		return n.opString()

	default:
		return "<invalid>"
	}
}

// opString renders an operator node by arity.
func (n *Node) opString() string {
	switch len(n.children) {
	case 1:
		return "(" + n.name + n.children[0].String() + ")"

	case 2:
		return "(" + n.children[0].String() +
			" " + n.name + " " +
			n.children[1].String() + ")"

	case 3: // conditional
		return "(" + n.children[0].String() +
			" ? " + n.children[1].String() +
			" : " + n.children[2].String() + ")"

	default:
		return "(" + n.name + ")"
	}
}

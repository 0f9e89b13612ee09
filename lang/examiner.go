package lang

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// UsageKind classifies a recorded usage site.
type UsageKind int

const (
	// UsageCall records a function call site.
	UsageCall UsageKind = iota

	// UsageVar records a variable reference site.
	UsageVar
)

// String returns a string representation of the usage kind.
func (k UsageKind) String() string {
	switch k {
	case UsageCall:
		return "call"

	case UsageVar:
		return "var"

	default:
		return "unknown"
	}
}

// Usage is one fact discovered about how a name is used at a specific site.
// A Usage is immutable once emitted.
type Usage struct {
	Kind UsageKind
	Name string
	Args int      // argument count (calls only)
	Tags int      // how many arguments are tag literals (calls only)
	Seen []string // kind of each argument as observed (calls only)
}

// String renders the usage for display.
func (u Usage) String() string {
	switch u.Kind {
	case UsageVar:
		return fmt.Sprintf("variable %q referenced", u.Name)

	case UsageCall:
		var b strings.Builder

		b.WriteString("function ")
		b.WriteString(strconv.Quote(u.Name))
		b.WriteString(" called with ")
		b.WriteString(strconv.Itoa(u.Args))

		if u.Args == 1 {
			b.WriteString(" arg")
		} else {
			b.WriteString(" args")
		}

		if u.Tags > 0 {
			fmt.Fprintf(&b, " (%d tag)", u.Tags)
		}

		if len(u.Seen) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(u.Seen, ","))
			b.WriteString("]")
		}

		return b.String()

	default:
		return "unknown usage"
	}
}

// UsageExaminer collects usage specs while a Walker traverses a tree.
//
// It recognizes call-shaped and reference-shaped nodes and appends one Usage
// per recognized site in discovery (pre-order) sequence. The examiner is the
// sole owner of the collected sequence: append-only during traversal,
// read-only afterward. It is not safe for concurrent traversals; use one
// examiner per traversal.
type UsageExaminer struct {
	specs []Usage
}

// Examine implements Examiner. Presence of a call node triggers emission
// regardless of argument count; nested calls each emit their own spec when
// the walker reaches them.
func (x *UsageExaminer) Examine(n *Node) bool {
	switch n.Kind() {
	case KindCall:
		u := Usage{
			Kind: UsageCall,
			Name: n.Name(),
			Args: n.Arity(),
			Seen: make([]string, n.Arity()),
		}

		for i := range n.Arity() {
			u.Seen[i] = strings.ToLower(n.Child(i).Kind().String())
			if n.TagChild(i) {
				u.Tags++
			}
		}

		x.specs = append(x.specs, u)

	case KindVar:
		x.specs = append(x.specs, Usage{Kind: UsageVar, Name: n.Name()})
	}

	return true
}

// Len returns the number of specs emitted so far.
func (x *UsageExaminer) Len() int { return len(x.specs) }

// Spec returns the i-th spec in emission order, i in [0, Len()).
// Out-of-range access is a contract violation and panics.
func (x *UsageExaminer) Spec(i int) Usage {
	if i < 0 || i >= len(x.specs) {
		panic(fmt.Sprintf(
			"lang: usage spec index %d out of range [0,%d)", i, len(x.specs),
		))
	}

	return x.specs[i]
}

// All returns an iterator over the collected specs in emission order.
func (x *UsageExaminer) All() iter.Seq[Usage] {
	return func(yield func(Usage) bool) {
		for _, u := range x.specs {
			if !yield(u) {
				return
			}
		}
	}
}

package lang

import (
	"errors"
	"testing"
)

// orderExaminer records visited nodes in dispatch order.
type orderExaminer struct {
	visited []*Node
	prune   func(n *Node) bool
}

func (x *orderExaminer) Examine(n *Node) bool {
	x.visited = append(x.visited, n)

	if x.prune != nil && x.prune(n) {
		return false
	}

	return true
}

func TestWalkPreOrder(t *testing.T) {
	x := NewVar("x")
	one := NewNumber(1)
	sum := NewOp("+", x, one)
	root := NewCall("f", sum)

	var rec orderExaminer

	err := Walker{}.Walk(root, &rec)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []*Node{root, sum, x, one}
	if len(rec.visited) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(rec.visited), len(want))
	}

	for i, n := range want {
		if rec.visited[i] != n {
			t.Errorf("visited[%d] = %v, want %v", i, rec.visited[i], n)
		}
	}
}

func TestWalkSkipsTagChildren(t *testing.T) {
	tag := NewTag("mode")
	arg := NewVar("x")
	root := NewCall("f", arg, tag)

	var rec orderExaminer

	err := Walker{}.Walk(root, &rec)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	for _, n := range rec.visited {
		if n == tag {
			t.Fatal("tag child was dispatched as a sub-expression")
		}
	}

	if len(rec.visited) != 2 {
		t.Errorf("visited %d nodes, want 2", len(rec.visited))
	}
}

func TestWalkPrunesOnFalse(t *testing.T) {
	inner := NewVar("x")
	root := NewCall("f", inner)

	rec := orderExaminer{
		prune: func(n *Node) bool { return n.Kind() == KindCall },
	}

	err := Walker{}.Walk(root, &rec)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if len(rec.visited) != 1 || rec.visited[0] != root {
		t.Errorf("pruned walk visited %d nodes, want only the root",
			len(rec.visited))
	}
}

func TestWalkNilRoot(t *testing.T) {
	var rec orderExaminer

	err := Walker{}.Walk(nil, &rec)
	if !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Walk(nil) error = %v, want ErrInvalidNode", err)
	}
}

func TestWalkDepthLimit(t *testing.T) {
	// Chain deeper than the limit.
	root := NewVar("x")
	for range 10 {
		root = NewOp("-", root)
	}

	var rec orderExaminer

	err := Walker{MaxDepth: 5}.Walk(root, &rec)
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("Walk error = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestWalkerReusable(t *testing.T) {
	w := Walker{}

	for _, root := range []*Node{
		NewVar("a"),
		NewCall("f", NewNumber(1)),
	} {
		var rec orderExaminer
		if err := w.Walk(root, &rec); err != nil {
			t.Fatalf("Walk: %v", err)
		}

		if len(rec.visited) == 0 || rec.visited[0] != root {
			t.Errorf("walk of %v did not start at root", root)
		}
	}
}

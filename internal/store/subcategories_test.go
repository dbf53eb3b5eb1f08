package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func node(id string, parentID *string, level int) *Subcategory {
	return &Subcategory{ID: id, CategoryID: "c1", ParentID: parentID, Name: id, Level: level}
}

func parentOf(id string) *string { return &id }

// forestGetter serves the ancestor walk from an in-memory node map.
func forestGetter(nodes map[string]*Subcategory) subcategoryGetter {
	return func(ctx context.Context, id string) (*Subcategory, error) {
		if n, ok := nodes[id]; ok {
			return n, nil
		}
		return nil, ErrNotFound
	}
}

func TestWalkAncestorsAcceptsValidChain(t *testing.T) {
	nodes := map[string]*Subcategory{
		"root": node("root", nil, 0),
		"mid":  node("mid", parentOf("root"), 1),
		"leaf": node("leaf", parentOf("mid"), 2),
	}

	err := walkAncestors(context.Background(), forestGetter(nodes), "other", nodes["leaf"])
	if err != nil {
		t.Fatalf("valid chain rejected: %v", err)
	}
}

func TestWalkAncestorsRejectsSelfParent(t *testing.T) {
	self := node("a", nil, 0)

	err := walkAncestors(context.Background(), forestGetter(nil), "a", self)
	if !errors.Is(err, ErrCircularParent) {
		t.Fatalf("self-parent not rejected: %v", err)
	}
}

func TestWalkAncestorsRejectsDescendantAsParent(t *testing.T) {
	nodes := map[string]*Subcategory{
		"a": node("a", nil, 0),
		"b": node("b", parentOf("a"), 1),
		"c": node("c", parentOf("b"), 2),
	}

	// Reparenting "a" under its own grandchild closes a cycle.
	err := walkAncestors(context.Background(), forestGetter(nodes), "a", nodes["c"])
	if !errors.Is(err, ErrCircularParent) {
		t.Fatalf("descendant parent not rejected: %v", err)
	}
}

func TestWalkAncestorsCapsChainDepth(t *testing.T) {
	nodes := map[string]*Subcategory{"n0": node("n0", nil, 0)}
	for i := 1; i <= maxTreeDepth+5; i++ {
		id := fmt.Sprintf("n%d", i)
		nodes[id] = node(id, parentOf(fmt.Sprintf("n%d", i-1)), i)
	}
	deepest := nodes[fmt.Sprintf("n%d", maxTreeDepth+5)]

	err := walkAncestors(context.Background(), forestGetter(nodes), "x", deepest)
	if !errors.Is(err, ErrCircularParent) {
		t.Fatalf("over-deep chain not rejected: %v", err)
	}
}

func TestWalkAncestorsSurfacesMissingAncestor(t *testing.T) {
	dangling := node("b", parentOf("gone"), 1)

	err := walkAncestors(context.Background(), forestGetter(nil), "a", dangling)
	if err == nil || errors.Is(err, ErrCircularParent) {
		t.Fatalf("broken chain should fail the walk, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing ancestor should surface as not-found, got %v", err)
	}
}

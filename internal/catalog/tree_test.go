package catalog

import (
	"testing"

	"extreme/internal/store"
)

func sub(id, categoryID, parentID, name string, pos int) store.Subcategory {
	sc := store.Subcategory{
		ID:            id,
		CategoryID:    categoryID,
		Name:          name,
		OrderPosition: pos,
		IsActive:      true,
	}
	if parentID != "" {
		sc.ParentID = &parentID
	}
	return sc
}

func testForest() []store.Subcategory {
	return []store.Subcategory{
		sub("laptops", "informatica", "", "Laptops", 1),
		sub("perifericos", "informatica", "", "Periféricos", 2),
		sub("gaming", "informatica", "laptops", "Gaming", 1),
		sub("ultrabooks", "informatica", "laptops", "Ultrabooks", 2),
		sub("teclados", "informatica", "perifericos", "Teclados", 1),
		sub("mecanicos", "informatica", "teclados", "Mecánicos", 1),
		sub("fundas", "accesorios", "", "Fundas", 1),
	}
}

func TestChildrenOfRoots(t *testing.T) {
	nav := NewNavigator(testForest())

	roots := nav.ChildrenOf("informatica", "")
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	if roots[0].ID != "laptops" || roots[1].ID != "perifericos" {
		t.Errorf("roots out of order: %s, %s", roots[0].ID, roots[1].ID)
	}
}

func TestChildrenOfNeverCrossesCategories(t *testing.T) {
	nav := NewNavigator(testForest())

	for _, root := range nav.ChildrenOf("accesorios", "") {
		if root.CategoryID != "accesorios" {
			t.Errorf("root %s belongs to category %s", root.ID, root.CategoryID)
		}
	}
	if got := nav.ChildrenOf("accesorios", "laptops"); len(got) != 0 {
		t.Errorf("parent from another category returned %d children", len(got))
	}
}

func TestChildrenOfOrderPosition(t *testing.T) {
	forest := []store.Subcategory{
		sub("b", "c1", "", "B", 5),
		sub("a", "c1", "", "A", 1),
		sub("tie2", "c1", "", "Tie2", 3),
		sub("tie1", "c1", "", "Tie1", 3),
	}
	nav := NewNavigator(forest)

	got := nav.ChildrenOf("c1", "")
	want := []string{"a", "tie2", "tie1", "b"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestCountDescendantsIsFlat(t *testing.T) {
	nav := NewNavigator(testForest())

	if got := nav.CountDescendants("informatica"); got != 6 {
		t.Errorf("informatica descendants = %d, want 6", got)
	}
	if got := nav.CountDescendants("accesorios"); got != 1 {
		t.Errorf("accesorios descendants = %d, want 1", got)
	}
	if got := nav.CountDescendants("vacia"); got != 0 {
		t.Errorf("empty category descendants = %d, want 0", got)
	}
}

func TestToggleExpanded(t *testing.T) {
	nav := NewNavigator(testForest())

	if nav.IsExpanded("laptops") {
		t.Fatal("nodes must start collapsed")
	}
	nav.ToggleExpanded("laptops")
	if !nav.IsExpanded("laptops") {
		t.Fatal("toggle should expand a collapsed node")
	}
	nav.ToggleExpanded("laptops")
	if nav.IsExpanded("laptops") {
		t.Fatal("toggle should collapse an expanded node")
	}
}

func TestRenderTreeRespectsExpansion(t *testing.T) {
	nav := NewNavigator(testForest())

	rows := nav.RenderTree("informatica")
	if len(rows) != 2 {
		t.Fatalf("collapsed tree emitted %d rows, want 2 roots", len(rows))
	}

	nav.ToggleExpanded("laptops")
	rows = nav.RenderTree("informatica")
	ids := rowIDs(rows)
	want := []string{"laptops", "gaming", "ultrabooks", "perifericos"}
	assertIDs(t, ids, want)

	if rows[1].Depth != 1 {
		t.Errorf("gaming depth = %d, want 1", rows[1].Depth)
	}
	if rows[3].Depth != 0 {
		t.Errorf("perifericos depth = %d, want 0", rows[3].Depth)
	}
}

func TestRenderTreeCollapsedNodeEmittedNotDescended(t *testing.T) {
	nav := NewNavigator(testForest())
	nav.ToggleExpanded("perifericos")

	ids := rowIDs(nav.RenderTree("informatica"))
	assertIDs(t, ids, []string{"laptops", "perifericos", "teclados"})
}

func TestRenderTreeExpandedFullForest(t *testing.T) {
	nav := NewNavigator(testForest())

	rows := nav.RenderTreeExpanded("informatica")
	ids := rowIDs(rows)
	want := []string{"laptops", "gaming", "ultrabooks", "perifericos", "teclados", "mecanicos"}
	assertIDs(t, ids, want)

	depths := map[string]int{"laptops": 0, "gaming": 1, "ultrabooks": 1, "perifericos": 0, "teclados": 1, "mecanicos": 2}
	for _, row := range rows {
		if row.Depth != depths[row.Subcategory.ID] {
			t.Errorf("%s depth = %d, want %d", row.Subcategory.ID, row.Depth, depths[row.Subcategory.ID])
		}
	}
}

func TestRenderTreeIsStableAcrossCalls(t *testing.T) {
	nav := NewNavigator(testForest())
	nav.ToggleExpanded("laptops")
	nav.ToggleExpanded("perifericos")

	first := rowIDs(nav.RenderTree("informatica"))
	second := rowIDs(nav.RenderTree("informatica"))
	assertIDs(t, second, first)
}

func TestRenderTreeSurvivesSelfParent(t *testing.T) {
	forest := []store.Subcategory{
		sub("root", "c1", "", "Root", 1),
		sub("loop", "c1", "loop", "Loop", 2),
	}

	nav := NewNavigator(forest)
	nav.ToggleExpanded("root")
	nav.ToggleExpanded("loop")

	rows := nav.RenderTree("c1")
	if len(rows) > len(forest) {
		t.Fatalf("self-parented node emitted %d rows from %d nodes", len(rows), len(forest))
	}
}

func TestRenderTreeSurvivesCorruptCycle(t *testing.T) {
	forest := []store.Subcategory{
		sub("root", "c1", "", "Root", 1),
		sub("a", "c1", "root", "A", 1),
		sub("b", "c1", "a", "B", 1),
	}
	// Corrupt the chain into a cycle under the root.
	forest[1].ParentID = strPtr("b")
	forest = append(forest, sub("a2", "c1", "root", "A2", 2))

	nav := NewNavigator(forest)
	for _, id := range []string{"root", "a", "b", "a2"} {
		nav.ToggleExpanded(id)
	}

	rows := nav.RenderTree("c1")
	if len(rows) > len(forest) {
		t.Fatalf("cycle emitted %d rows from %d nodes", len(rows), len(forest))
	}
}

func rowIDs(rows []TreeRow) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.Subcategory.ID
	}
	return ids
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func strPtr(s string) *string { return &s }

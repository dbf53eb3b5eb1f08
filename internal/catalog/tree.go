// Package catalog holds the storefront's in-memory core: the subcategory tree
// navigator, the product filter engine, and the composer that feeds both from
// the backing store.
package catalog

import (
	"sort"

	"extreme/internal/store"
)

// maxRenderDepth caps tree descent. The store rejects cyclic parenting on
// write, but data written before that guard existed could still loop, so the
// walk also refuses to revisit a node or descend past this depth.
const maxRenderDepth = 64

// TreeRow is one emitted node of a rendered tree: the subcategory plus its
// indentation depth relative to the category root.
type TreeRow struct {
	Subcategory store.Subcategory `json:"subcategory"`
	Depth       int               `json:"depth"`
}

// Navigator computes tree-shaped views over the flat category/subcategory
// collections. Expansion state is per-navigator UI state, never persisted.
type Navigator struct {
	subcategories []store.Subcategory
	expanded      map[string]bool
}

func NewNavigator(subcategories []store.Subcategory) *Navigator {
	return &Navigator{
		subcategories: subcategories,
		expanded:      map[string]bool{},
	}
}

// ChildrenOf returns the subcategories of categoryID whose parent is parentID,
// ordered by order_position ascending with ties kept in arrival order. An
// empty parentID selects the roots of the category; subcategories of other
// categories are never included, even when their parent_id is null.
func (n *Navigator) ChildrenOf(categoryID, parentID string) []store.Subcategory {
	var children []store.Subcategory
	for _, sc := range n.subcategories {
		if sc.CategoryID != categoryID {
			continue
		}
		if parentID == "" {
			if sc.ParentID == nil {
				children = append(children, sc)
			}
		} else if sc.ParentID != nil && *sc.ParentID == parentID {
			children = append(children, sc)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].OrderPosition < children[j].OrderPosition
	})
	return children
}

// CountDescendants is the flat count of every subcategory under the category,
// regardless of depth.
func (n *Navigator) CountDescendants(categoryID string) int {
	count := 0
	for _, sc := range n.subcategories {
		if sc.CategoryID == categoryID {
			count++
		}
	}
	return count
}

// ToggleExpanded flips a node's expansion state. The expansion set is replaced
// wholesale rather than mutated in place, so slices of rows rendered from a
// previous state stay consistent.
func (n *Navigator) ToggleExpanded(nodeID string) {
	next := make(map[string]bool, len(n.expanded)+1)
	for id, on := range n.expanded {
		if on {
			next[id] = true
		}
	}
	if next[nodeID] {
		delete(next, nodeID)
	} else {
		next[nodeID] = true
	}
	n.expanded = next
}

func (n *Navigator) IsExpanded(nodeID string) bool {
	return n.expanded[nodeID]
}

// RenderTree walks the category's forest depth-first: each root in
// order_position order, then the children of every expanded node at depth+1.
// Collapsed nodes are emitted but not descended into.
func (n *Navigator) RenderTree(categoryID string) []TreeRow {
	var rows []TreeRow
	visited := map[string]bool{}
	n.walk(categoryID, "", 0, visited, &rows)
	return rows
}

// RenderTreeExpanded renders the full forest as if every node were expanded,
// used by the back office for cascade-delete previews.
func (n *Navigator) RenderTreeExpanded(categoryID string) []TreeRow {
	var rows []TreeRow
	visited := map[string]bool{}
	n.walkAll(categoryID, "", 0, visited, &rows)
	return rows
}

func (n *Navigator) walk(categoryID, parentID string, depth int, visited map[string]bool, rows *[]TreeRow) {
	if depth > maxRenderDepth {
		return
	}
	for _, sc := range n.ChildrenOf(categoryID, parentID) {
		if visited[sc.ID] {
			continue
		}
		visited[sc.ID] = true
		*rows = append(*rows, TreeRow{Subcategory: sc, Depth: depth})
		if n.expanded[sc.ID] {
			n.walk(categoryID, sc.ID, depth+1, visited, rows)
		}
	}
}

func (n *Navigator) walkAll(categoryID, parentID string, depth int, visited map[string]bool, rows *[]TreeRow) {
	if depth > maxRenderDepth {
		return
	}
	for _, sc := range n.ChildrenOf(categoryID, parentID) {
		if visited[sc.ID] {
			continue
		}
		visited[sc.ID] = true
		*rows = append(*rows, TreeRow{Subcategory: sc, Depth: depth})
		n.walkAll(categoryID, sc.ID, depth+1, visited, rows)
	}
}

// Package domgraph validates that a captured DOM snapshot's parent/child
// references form a forest, using github.com/katalvlaran/lvlath's graph
// core and cycle detector rather than hand-rolling one.
package domgraph

import (
	"strings"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// ValidateForest builds a directed lvlath graph from dom's Children edges
// and runs DetectCycles to confirm the node set is acyclic. A DOM snapshot
// with a cycle indicates a bug in the capturing RenderBackend, not a
// user-facing config problem, so failures surface as a Metric-category
// error (§7: "internal inconsistency ... indicates a bug").
//
// Dangling child references (ids that don't resolve to a node) are valid
// post-filter state per §4.D and are silently skipped rather than treated
// as graph edges.
func ValidateForest(dom *view.DomSnapshot) error {
	if dom == nil || len(dom.Nodes) == 0 {
		return nil
	}

	g := core.NewMixedGraph(core.WithDirected(true))
	for _, n := range dom.Nodes {
		if err := g.AddVertex(n.ID); err != nil {
			return dpcerr.Wrap(dpcerr.Metric, "dom graph vertex", err)
		}
	}
	for _, n := range dom.Nodes {
		for _, c := range n.Children {
			if !g.HasVertex(c) {
				continue
			}
			if _, err := g.AddEdge(n.ID, c, 1); err != nil {
				return dpcerr.Wrap(dpcerr.Metric, "dom graph edge", err)
			}
		}
	}

	hasCycle, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		return dpcerr.Wrap(dpcerr.Metric, "dom forest cycle detection failed", err)
	}
	if hasCycle {
		return dpcerr.Newf(dpcerr.Metric, "dom forest contains a cycle: %s", describeCycle(cycles[0]))
	}
	return nil
}

func describeCycle(cycle []string) string {
	return strings.Join(cycle, " -> ")
}

// RootIDs returns, in snapshot order, the ids of nodes that no node lists in
// its Children. It scans the Children lists directly; no graph traversal is
// involved.
func RootIDs(dom *view.DomSnapshot) []string {
	if dom == nil {
		return nil
	}
	hasParent := make(map[string]bool, len(dom.Nodes))
	for _, n := range dom.Nodes {
		for _, c := range n.Children {
			hasParent[c] = true
		}
	}
	var roots []string
	for _, n := range dom.Nodes {
		if !hasParent[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// Package filter implements the DOM selector filter and ignore-region
// masking stage that runs strictly after ingestion (§5 ordering guarantee).
package filter

import (
	"strings"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// SelectorKind classifies a parsed ignore selector.
type SelectorKind int

const (
	SelectorID SelectorKind = iota
	SelectorClass
	SelectorTag
)

// Selector is one parsed ignore-selector entry.
type Selector struct {
	Kind  SelectorKind
	Value string // already trimmed and lowercased
}

// ParseSelectors parses the CLI form: comma-separated, each part trimmed and
// lowercased, empty parts dropped.
func ParseSelectors(raw string) []Selector {
	parts := strings.Split(raw, ",")
	out := make([]Selector, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		switch {
		case strings.HasPrefix(p, "#"):
			out = append(out, Selector{Kind: SelectorID, Value: p[1:]})
		case strings.HasPrefix(p, "."):
			out = append(out, Selector{Kind: SelectorClass, Value: p[1:]})
		default:
			out = append(out, Selector{Kind: SelectorTag, Value: p})
		}
	}
	return out
}

// Matches reports whether node satisfies selector, per §4.D's three forms.
func (s Selector) Matches(n view.DomNode) bool {
	switch s.Kind {
	case SelectorID:
		if id, ok := n.Attributes["id"]; ok && strings.EqualFold(id, s.Value) {
			return true
		}
		return strings.EqualFold(n.ID, s.Value)
	case SelectorClass:
		classes, ok := n.Attributes["class"]
		if !ok {
			return false
		}
		for _, tok := range strings.Fields(classes) {
			if strings.EqualFold(tok, s.Value) {
				return true
			}
		}
		return false
	case SelectorTag:
		return strings.EqualFold(n.Tag, s.Value)
	default:
		return false
	}
}

// AnyMatches reports whether any selector in the list matches n.
func AnyMatches(selectors []Selector, n view.DomNode) bool {
	for _, s := range selectors {
		if s.Matches(n) {
			return true
		}
	}
	return false
}

// FilterDom returns a new DomSnapshot with every node matching any selector
// removed. Children/Parent references into removed nodes are left dangling
// intentionally: the filter is advisory and metrics iterate the flat node
// list rather than traversing children blindly (§4.D).
//
// Idempotent: filtering twice with the same selectors equals filtering once,
// since a node either matches and is removed, or doesn't and stays — running
// the same selectors again against the already-filtered list removes
// nothing further.
func FilterDom(dom *view.DomSnapshot, selectors []Selector) *view.DomSnapshot {
	if dom == nil {
		return nil
	}
	out := &view.DomSnapshot{URL: dom.URL, Title: dom.Title}
	for _, n := range dom.Nodes {
		if AnyMatches(selectors, n) {
			continue
		}
		out.Nodes = append(out.Nodes, n)
	}
	return out
}

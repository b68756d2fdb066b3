package domgraph

import (
	"testing"

	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
)

func TestValidateForestAcceptsTree(t *testing.T) {
	dom := &view.DomSnapshot{Nodes: []view.DomNode{
		{ID: "root", Children: []string{"a", "b"}},
		{ID: "a", Parent: "root"},
		{ID: "b", Parent: "root"},
	}}
	assert.NoError(t, ValidateForest(dom))
}

func TestValidateForestRejectsCycle(t *testing.T) {
	dom := &view.DomSnapshot{Nodes: []view.DomNode{
		{ID: "a", Children: []string{"b"}},
		{ID: "b", Children: []string{"a"}},
	}}
	assert.Error(t, ValidateForest(dom))
}

func TestValidateForestToleratesDanglingChild(t *testing.T) {
	dom := &view.DomSnapshot{Nodes: []view.DomNode{
		{ID: "a", Children: []string{"removed"}},
	}}
	assert.NoError(t, ValidateForest(dom))
}

func TestRootIDs(t *testing.T) {
	dom := &view.DomSnapshot{Nodes: []view.DomNode{
		{ID: "root", Children: []string{"a"}},
		{ID: "a", Parent: "root"},
	}}
	assert.Equal(t, []string{"root"}, RootIDs(dom))
}

package artifact

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEmitWritesHeatmapAndDomJSONWhenPresent(t *testing.T) {
	dir := t.TempDir()
	refImg := solidImage(4, 4, color.RGBA{10, 20, 30, 255})
	implImg := solidImage(4, 4, color.RGBA{200, 20, 30, 255})

	ref := &view.NormalizedView{Kind: view.KindURL, Dom: &view.DomSnapshot{Nodes: []view.DomNode{{ID: "a"}}}}
	impl := &view.NormalizedView{Kind: view.KindImage}

	m, err := Emit(refImg, implImg, ref, impl, []string{"1 element missing"}, dir)
	require.NoError(t, err)

	assert.FileExists(t, m.DiffHeatmapPath)
	assert.FileExists(t, m.RefDomPath)
	assert.Empty(t, m.ImplDomPath, "impl view has no dom snapshot")
	assert.Empty(t, m.RefFigmaPath)

	data, err := os.ReadFile(m.RefDomPath)
	require.NoError(t, err)
	var decoded view.DomSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Nodes, 1)

	issues, err := os.ReadFile(filepath.Join(dir, "report_issues.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(issues), "1 element missing")
}

func TestEmitSkipsFigmaJSONWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	refImg := solidImage(2, 2, color.RGBA{1, 1, 1, 255})
	implImg := solidImage(2, 2, color.RGBA{1, 1, 1, 255})
	ref := &view.NormalizedView{Kind: view.KindImage}
	impl := &view.NormalizedView{Kind: view.KindImage}

	m, err := Emit(refImg, implImg, ref, impl, nil, dir)
	require.NoError(t, err)
	assert.Empty(t, m.RefFigmaPath)
	assert.Empty(t, m.ImplFigmaPath)
	assert.Empty(t, m.RefDomPath)
	assert.Empty(t, m.ImplDomPath)
}

package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSolidPNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestParseResourceClassifiesImagePath(t *testing.T) {
	r := parseResource("/tmp/design.png")
	assert.Equal(t, "image", string(r.Kind))
}

func TestParseResourceClassifiesURL(t *testing.T) {
	r := parseResource("http://localhost:3000")
	assert.Equal(t, "url", string(r.Kind))
}

func TestParseResourceClassifiesFigmaURL(t *testing.T) {
	r := parseResource("https://www.figma.com/file/FILE123/Mock?node-id=1-2")
	assert.Equal(t, "figma", string(r.Kind))
	assert.Equal(t, "FILE123", r.Figma.FileKey)
	assert.Equal(t, "1-2", r.Figma.NodeID)
}

func TestSplitCSVTrimsEmptySegments(t *testing.T) {
	assert.Equal(t, []string{"pixel", "color"}, splitCSV("pixel,color"))
	assert.Nil(t, splitCSV(""))
}

func TestCompareCommandIdenticalImagesExitsZero(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.png")
	implPath := filepath.Join(dir, "impl.png")
	writeSolidPNG(t, refPath, 8, 8, color.RGBA{20, 30, 40, 255})
	writeSolidPNG(t, implPath, 8, 8, color.RGBA{20, 30, 40, 255})

	buf := new(bytes.Buffer)
	cmd := compareCmd
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"--ref", refPath, "--impl", implPath,
		"--viewport-width", "8", "--viewport-height", "8",
		"--artifacts-dir", dir,
	})

	require.NoError(t, cmd.Execute())

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, "compare", env["mode"])
	assert.Equal(t, true, env["passed"])
}

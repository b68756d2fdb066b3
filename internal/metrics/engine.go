package metrics

import (
	"image"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/view"
)

// Metric names one of the five selectable metrics.
type Metric string

const (
	Pixel      Metric = "pixel"
	Layout     Metric = "layout"
	Typography Metric = "typography"
	Color      Metric = "color"
	Content    Metric = "content"
)

func defaultSelection(ref, impl *view.NormalizedView) []Metric {
	if ref.HasStructuralMetadata() || impl.HasStructuralMetadata() {
		return []Metric{Pixel, Layout, Typography, Color, Content}
	}
	return []Metric{Pixel, Color}
}

// EffectiveSelection implements §4.E's activation policy: an explicit
// non-empty selection is honored verbatim. An empty selection defaults to
// {Pixel, Color} when neither view carries DOM/Figma metadata, or to the
// full metric set when either side does.
func EffectiveSelection(selection []Metric, ref, impl *view.NormalizedView) []Metric {
	if len(selection) > 0 {
		return selection
	}
	return defaultSelection(ref, impl)
}

func contains(list []Metric, m Metric) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

// Run executes every metric in the effective selection and returns the
// populated MetricScores. A metric outside the selection, or one whose
// inputs don't suffice, leaves its slot nil rather than erroring (§4.E); a
// nil raster likewise leaves the Pixel and Color slots nil. Only an error
// returned by PixelMetric surfaces, wrapped as a Metric-category dpcerr.
func Run(refImg, implImg image.Image, ref, impl *view.NormalizedView, selection []Metric) (view.MetricScores, error) {
	effective := EffectiveSelection(selection, ref, impl)
	var out view.MetricScores

	if contains(effective, Pixel) {
		res, err := PixelMetric(refImg, implImg)
		if err != nil {
			return out, dpcerr.Wrap(dpcerr.Metric, "pixel metric failed", err)
		}
		out.Pixel = res
	}
	if contains(effective, Layout) {
		out.Layout = LayoutMetric(ref, impl)
	}
	if contains(effective, Typography) {
		out.Typography = TypographyMetric(ref, impl)
	}
	if contains(effective, Color) {
		out.Color = ColorMetric(refImg, implImg)
	}
	if contains(effective, Content) {
		out.Content = ContentMetric(ref, impl)
	}
	return out, nil
}

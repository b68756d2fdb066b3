// Package view defines NormalizedView and its constituent entities: the
// canonical, comparable representation every resource kind (image, URL,
// Figma frame) is reduced to before any metric runs.
package view

// Kind identifies the resource a NormalizedView was derived from.
type Kind string

const (
	KindURL   Kind = "url"
	KindImage Kind = "image"
	KindFigma Kind = "figma"
)

// BoundingBox is either pixel-space or normalized [0,1] space, never mixed
// within one list. Callers must track which space a given slice uses via
// its surrounding context (raw DOM/Figma geometry is pixel-space; filter and
// diff outputs are normalized).
type BoundingBox struct {
	X, Y, W, H float64
}

// Right and Bottom are convenience accessors used throughout the metric and
// quality packages for overlap and gap computations.
func (b BoundingBox) Right() float64  { return b.X + b.W }
func (b BoundingBox) Bottom() float64 { return b.Y + b.H }

// Centroid returns the box's center point.
func (b BoundingBox) Centroid() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// ComputedStyle carries the subset of CSS computed style the typography and
// color metrics need.
type ComputedStyle struct {
	FontFamily      string
	FontSize        float64
	FontWeight      float64
	LineHeight      float64
	Color           string
	BackgroundColor string
	Display         string
	Visibility      string
	Opacity         float64
}

// DomNode is one element of a captured DOM snapshot. Children/Parent form a
// forest over the owning DomSnapshot.Nodes list; Parent is a lookup
// back-reference, not an ownership edge — the Nodes list (via Children) is
// authoritative.
type DomNode struct {
	ID         string
	Tag        string
	Children   []string
	Parent     string // empty string means root
	Attributes map[string]string
	Text       string
	Box        BoundingBox
	Style      *ComputedStyle
}

// DomSnapshot is a structural capture of a rendered page.
type DomSnapshot struct {
	URL   string
	Title string
	Nodes []DomNode
}

// NodeByID returns the node with the given id, or false if absent.
func (s *DomSnapshot) NodeByID(id string) (DomNode, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return s.Nodes[i], true
		}
	}
	return DomNode{}, false
}

// FillKind enumerates the kinds of paint a Figma fill can carry.
type FillKind string

const (
	FillSolid    FillKind = "solid"
	FillGradient FillKind = "gradient"
	FillImage    FillKind = "image"
)

// Fill is one paint layer on a Figma node.
type Fill struct {
	Kind    FillKind
	Color   string // hex, solid fills only
	Opacity float64
}

// FigmaTypography mirrors the subset of Figma text properties the
// typography metric compares against DOM ComputedStyle.
type FigmaTypography struct {
	FontFamily string
	FontSize   float64
	FontWeight float64
	LineHeight float64
}

// FigmaNode is one node of a captured Figma document tree.
type FigmaNode struct {
	ID         string
	Name       string
	NodeType   string // FRAME, TEXT, RECTANGLE, COMPONENT, ...
	Box        BoundingBox
	Text       string
	Typography *FigmaTypography
	Fills      []Fill
	Children   []string
}

// FigmaSnapshot is a captured Figma document tree rooted at a single frame.
type FigmaSnapshot struct {
	FileKey string
	NodeID  string
	Nodes   []FigmaNode
}

// NodeByID returns the node with the given id, or false if absent.
func (s *FigmaSnapshot) NodeByID(id string) (FigmaNode, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return s.Nodes[i], true
		}
	}
	return FigmaNode{}, false
}

// OcrBlock is one recognized text region, used only for Image-kind views
// that opted into OCR.
type OcrBlock struct {
	Text string
	Box  BoundingBox
}

// NormalizedView is the pivot entity every metric and quality heuristic
// consumes. Dom/FigmaTree/OcrBlocks are optional slots on a single entity
// rather than a class hierarchy: at most one of {Dom, FigmaTree} may be
// populated, never both.
type NormalizedView struct {
	Kind           Kind
	ScreenshotPath string
	Width          int
	Height         int
	Dom            *DomSnapshot
	FigmaTree      *FigmaSnapshot
	OcrBlocks      []OcrBlock
}

// HasStructuralMetadata reports whether the view carries DOM or Figma data,
// which the metric engine's activation policy and the quality heuristics
// both branch on.
func (v *NormalizedView) HasStructuralMetadata() bool {
	return v != nil && (v.Dom != nil || v.FigmaTree != nil)
}

// IgnoreRegion is a rectangle whose pixels are masked before pixel-based
// comparison. Values <=1.0 are interpreted as normalized [0,1]; any value
// >1.0 marks the whole region as absolute pixel coordinates.
type IgnoreRegion struct {
	X, Y, W, H float64
}

// IsNormalized reports whether all four fields are within [0,1], meaning
// the region is expressed relative to view dimensions rather than pixels.
func (r IgnoreRegion) IsNormalized() bool {
	return r.X <= 1.0 && r.Y <= 1.0 && r.W <= 1.0 && r.H <= 1.0
}

// Severity classifies a diff entry's visual significance.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
)

// MetricScores holds the optional per-metric result slots. A nil pointer
// for a given metric means that metric did not run (either no input
// support, or it was not selected).
type MetricScores struct {
	Pixel      *PixelResult
	Layout     *LayoutResult
	Typography *TypographyResult
	Color      *ColorResult
	Content    *ContentResult
}

// ScoreWeights are the five non-negative combiner weights. They need not
// sum to 1; the combiner renormalizes over the metrics that actually ran.
type ScoreWeights struct {
	Pixel      float64
	Layout     float64
	Typography float64
	Color      float64
	Content    float64
}

// DefaultWeights matches spec §3's default weighting.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{Pixel: 0.35, Layout: 0.25, Typography: 0.15, Color: 0.15, Content: 0.10}
}

// DefaultThreshold is the default pass/fail similarity threshold.
const DefaultThreshold = 0.95

package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// TypographyMetric compares computed style (DOM) or typography (Figma) for
// matched element pairs that both carry style information. Requires at
// least one styled pair to run (§4.E).
func TypographyMetric(ref, impl *view.NormalizedView) *view.TypographyResult {
	if !ref.HasStructuralMetadata() || !impl.HasStructuralMetadata() {
		return nil
	}
	pairs, _, _ := matchElements(elementsFromView(ref), elementsFromView(impl))

	var styled []elementPair
	for _, p := range pairs {
		if p.Ref.HasStyle && p.Impl.HasStyle {
			styled = append(styled, p)
		}
	}
	if len(styled) == 0 {
		return nil
	}

	var issues []view.TypographyIssue
	for _, p := range styled {
		rf := strings.Trim(strings.ToLower(p.Ref.FontFamily), `"'`)
		im := strings.Trim(strings.ToLower(p.Impl.FontFamily), `"'`)
		if rf != im {
			issues = append(issues, view.TypographyIssue{
				Kind: view.TypoFontFamilyMismatch, RefID: p.Ref.ID, ImplID: p.Impl.ID,
				Detail: fmt.Sprintf("%q vs %q", p.Ref.FontFamily, p.Impl.FontFamily),
			})
		}
		if math.Abs(p.Ref.FontSize-p.Impl.FontSize) > 1 {
			issues = append(issues, view.TypographyIssue{
				Kind: view.TypoFontSizeDiff, RefID: p.Ref.ID, ImplID: p.Impl.ID,
				Detail: fmt.Sprintf("%.1fpx vs %.1fpx", p.Ref.FontSize, p.Impl.FontSize),
			})
		}
		if math.Abs(p.Ref.FontWeight-p.Impl.FontWeight) >= 100 {
			issues = append(issues, view.TypographyIssue{
				Kind: view.TypoFontWeightDiff, RefID: p.Ref.ID, ImplID: p.Impl.ID,
				Detail: fmt.Sprintf("%.0f vs %.0f", p.Ref.FontWeight, p.Impl.FontWeight),
			})
		}
		if p.Ref.LineHeight != 0 && math.Abs(p.Ref.LineHeight-p.Impl.LineHeight)/p.Ref.LineHeight > 0.10 {
			issues = append(issues, view.TypographyIssue{
				Kind: view.TypoLineHeightDiff, RefID: p.Ref.ID, ImplID: p.Impl.ID,
				Detail: fmt.Sprintf("%.2f vs %.2f", p.Ref.LineHeight, p.Impl.LineHeight),
			})
		}
	}

	score := 1 - float64(len(issues))/float64(len(styled)*4)
	return &view.TypographyResult{Score: clamp01(score), Issues: issues}
}

// Package artifact implements the optional diff-artifact generator: the
// diff heatmap, pretty-printed DOM/Figma snapshots, and a synthesized PDF
// handoff report, all written under a caller-owned artifacts directory.
package artifact

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/geometry"
	"github.com/MeKo-Tech/dpc/internal/view"
)

// Manifest lists the paths of every artifact a single Emit call wrote. A
// zero-value field means that artifact was not applicable (e.g. neither
// side carried a Figma tree) rather than that writing it failed.
type Manifest struct {
	DiffHeatmapPath  string
	RefDomPath       string
	ImplDomPath      string
	RefFigmaPath     string
	ImplFigmaPath    string
	ReportPath       string
	ReportIssuesPath string
}

// Emit implements §4.G: always synthesizes diff_heatmap.png in compare mode,
// emits ref/impl_dom.json and ref/impl_figma.json only for sides that carry
// that metadata, and (DOMAIN+ supplement) synthesizes a single-page
// report.pdf embedding the heatmap plus a sidecar top-issues text file, for
// handoff to reviewers who won't open the JSON artifacts directly.
func Emit(refImg, implImg image.Image, ref, impl *view.NormalizedView, topIssues []string, artifactsDir string) (Manifest, error) {
	var m Manifest

	heatmap, err := geometry.DiffHeatmap(refImg, implImg)
	if err != nil {
		return m, dpcerr.Wrap(dpcerr.Image, "failed to synthesize diff heatmap", err)
	}
	m.DiffHeatmapPath = filepath.Join(artifactsDir, "diff_heatmap.png")
	if err := imaging.Save(heatmap, m.DiffHeatmapPath); err != nil {
		return m, dpcerr.Wrap(dpcerr.Config, "failed to write diff heatmap", err)
	}

	if ref.Dom != nil {
		p, err := writeJSON(artifactsDir, "ref_dom.json", ref.Dom)
		if err != nil {
			return m, err
		}
		m.RefDomPath = p
	}
	if impl.Dom != nil {
		p, err := writeJSON(artifactsDir, "impl_dom.json", impl.Dom)
		if err != nil {
			return m, err
		}
		m.ImplDomPath = p
	}
	if ref.FigmaTree != nil {
		p, err := writeJSON(artifactsDir, "ref_figma.json", ref.FigmaTree)
		if err != nil {
			return m, err
		}
		m.RefFigmaPath = p
	}
	if impl.FigmaTree != nil {
		p, err := writeJSON(artifactsDir, "impl_figma.json", impl.FigmaTree)
		if err != nil {
			return m, err
		}
		m.ImplFigmaPath = p
	}

	reportPath, issuesPath, err := emitReport(m.DiffHeatmapPath, topIssues, artifactsDir)
	if err != nil {
		return m, err
	}
	m.ReportPath = reportPath
	m.ReportIssuesPath = issuesPath
	return m, nil
}

func writeJSON(dir, name string, v interface{}) (string, error) {
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", dpcerr.Wrap(dpcerr.Config, "failed to marshal "+name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: artifacts are meant to be readable by the caller
		return "", dpcerr.Wrap(dpcerr.Config, "failed to write "+name, err)
	}
	return path, nil
}

// emitReport builds report.pdf by importing the heatmap raster via pdfcpu's
// image-import path — the synthesis counterpart to pdf.go's extraction
// path, both built on pdfcpu/pkg/api. pdfcpu's import command has no text
// layer, so topIssues is written alongside as report_issues.txt rather than
// stamped into the page.
func emitReport(heatmapPath string, topIssues []string, artifactsDir string) (string, string, error) {
	reportPath := filepath.Join(artifactsDir, "report.pdf")
	if err := api.ImportImagesFile([]string{heatmapPath}, reportPath, nil, nil); err != nil {
		return "", "", dpcerr.Wrap(dpcerr.Config, "failed to synthesize pdf report", err)
	}

	issuesPath := filepath.Join(artifactsDir, "report_issues.txt")
	if err := os.WriteFile(issuesPath, []byte(strings.Join(topIssues, "\n")+"\n"), 0o644); err != nil { //nolint:gosec // G306
		return "", "", dpcerr.Wrap(dpcerr.Config, "failed to write report issues sidecar", err)
	}
	return reportPath, issuesPath, nil
}

package quality

import "github.com/MeKo-Tech/dpc/internal/view"

// Evaluate scores a single NormalizedView in isolation (§4.F): baseline 0.4,
// additive structural/alignment/spacing contributions, clamped to [0,1].
func Evaluate(v *view.NormalizedView) Result {
	if v == nil {
		return Result{Score: clamp01(0.4)}
	}

	score := 0.4
	var findings []Finding

	hBonus, hFindings := hierarchyScore(v)
	score += hBonus
	findings = append(findings, hFindings...)

	if len(v.OcrBlocks) > 0 {
		score += 0.03
	}

	aBonus, aFindings := alignmentScore(v)
	score += aBonus
	findings = append(findings, aFindings...)

	sBonus, sFindings := spacingScore(v)
	score += sBonus
	findings = append(findings, sFindings...)

	findings = append(findings, contrastFinding())

	return Result{Score: clamp01(score), Findings: findings}
}

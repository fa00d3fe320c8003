package outwriter

import "fmt"

// BadgeThresholds defines the color bands of the coverage badge.
type BadgeThresholds struct {
	Red    int // coverage at or below Red is red
	Yellow int // coverage at or above Yellow is green
}

// DefaultBadgeThresholds matches the global 70% coverage gate.
func DefaultBadgeThresholds() BadgeThresholds {
	return BadgeThresholds{Red: 40, Yellow: 70}
}

// RenderBadge returns a shields-style SVG badge for the overall coverage.
func RenderBadge(coverage int, thresholds BadgeThresholds) string {
	coverage = max(0, min(coverage, 100))
	label := fmt.Sprintf("%d%%", coverage)

	const (
		leftWidth  = 63
		rightWidth = 42
		height     = 20
	)
	totalWidth := leftWidth + rightWidth

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" role="img" aria-label="coverage: %s">
  <title>coverage: %s</title>
  <g shape-rendering="crispEdges">
    <rect width="%d" height="%d" fill="#555"/>
    <rect x="%d" width="%d" height="%d" fill="%s"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="11">
    <text aria-hidden="true" x="%d" y="15" fill="#010101" fill-opacity=".3">coverage</text>
    <text x="%d" y="14">coverage</text>
    <text aria-hidden="true" x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>
    <text x="%d" y="14">%s</text>
  </g>
</svg>
`,
		totalWidth, height, label,
		label,
		totalWidth, height,
		leftWidth, rightWidth, height, badgeColor(coverage, thresholds),
		leftWidth/2,
		leftWidth/2,
		leftWidth+rightWidth/2, label,
		leftWidth+rightWidth/2, label,
	)
}

func badgeColor(coverage int, thresholds BadgeThresholds) string {
	switch {
	case coverage >= thresholds.Yellow:
		return "#4c1"
	case coverage > thresholds.Red:
		return "#dfb317"
	default:
		return "#e05d44"
	}
}

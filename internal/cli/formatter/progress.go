package formatter

import (
	"fmt"
	"strings"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// StagePercent maps a research pipeline stage onto display progress.
// Stages are advisory, so the mapping only needs to be monotone.
func StagePercent(stage domain.ResearchStage) float64 {
	switch stage {
	case domain.StageSearching:
		return 0.15
	case domain.StageRegionalLookup:
		return 0.35
	case domain.StageCountryLookup:
		return 0.55
	case domain.StageSynthesizing:
		return 0.80
	case domain.StageDone:
		return 1.0
	default:
		return 0
	}
}

// StageLabel returns the user-facing label for a research stage.
func StageLabel(stage domain.ResearchStage) string {
	switch stage {
	case domain.StageSearching:
		return "Searching village sources..."
	case domain.StageRegionalLookup:
		return "Broadening to regional sources..."
	case domain.StageCountryLookup:
		return "Broadening to country sources..."
	case domain.StageSynthesizing:
		return "Synthesizing research report..."
	case domain.StageDone:
		return "Done"
	default:
		return string(stage)
	}
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

package engine

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

// AnalysisInstruction 每次态势合成都携带的系统指令
const AnalysisInstruction = `You are an advanced Humanitarian Intelligence Engine (Aura).
Your goal is to harmonize disparate data points into actionable intelligence for policymakers and field actors.

OBJECTIVES:
1. KEEP HUMANITARIANS SAFE: Identify threats to worker safety and safe mobility routes.
2. QUANTIFY AID: Estimate specific supply amounts needed.
3. TURNAROUND: Estimate time for response vs. preparedness.
4. VULNERABILITY: Prioritize children, women, and PWDs.

Disaggregation percentages are independent estimates of overlapping groups, each between 0 and 100.
Output must be structured JSON.`

// DeepDiveInstruction 开放式研究的系统指令
const DeepDiveInstruction = `You are Aura's strategic research analyst.
Research the topic across the selected regions using current open sources, compare regional trends,
and give a forward-looking outlook with concrete strategic actions for humanitarian leadership.
Output must be structured JSON.`

func writeScope(sb *strings.Builder, regions []string, dr *model.DateRange) {
	if len(regions) > 0 {
		fmt.Fprintf(sb, "SELECTED REGIONS: %s\n", strings.Join(regions, ", "))
	}
	if dr != nil {
		fmt.Fprintf(sb, "DATE WINDOW: %s to %s (inclusive)\n", dr.Start, dr.End)
	}
}

func analysisPrompt(in Input, regions []string, dr *model.DateRange, reference string) string {
	var sb strings.Builder
	writeScope(&sb, regions, dr)

	if reference = strings.TrimSpace(reference); reference != "" {
		sb.WriteString("\nREFERENCE CONTEXT:\n")
		sb.WriteString(reference)
		sb.WriteString("\n")
	}

	if text := strings.TrimSpace(in.FreeText); text != "" {
		sb.WriteString("\nFIELD REPORT:\n")
		sb.WriteString(text)
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb, "\nRESEARCH TOPIC: %s\n", strings.TrimSpace(in.Topic))
		sb.WriteString("Research current open-source reporting on this topic for the selected regions before analysing.\n")
	}

	sb.WriteString("\nProduce the full situation analysis for the scope above.")
	return sb.String()
}

func deepDivePrompt(topic string, regions []string, dr *model.DateRange, reference string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DEEP-DIVE TOPIC: %s\n", strings.TrimSpace(topic))
	writeScope(&sb, regions, dr)

	if reference = strings.TrimSpace(reference); reference != "" {
		sb.WriteString("\nREFERENCE CONTEXT:\n")
		sb.WriteString(reference)
		sb.WriteString("\n")
	}

	sb.WriteString("\nCover each selected region in regionalTrends, then assess cross-regional patterns, outlook, sector implications, funding impact and strategic actions.")
	return sb.String()
}

package alignment

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

const alignInstruction = `You are Aura's context editor. Keep only the passages of the reference text that concern
the selected regions and fall inside the date window. Remove everything else. Reorganise the kept
passages by region. Do not add facts that are not in the text. Return plain text only.`

const briefingInstruction = `You are Aura's open-source intelligence analyst. Write a factual deep research briefing
for humanitarian responders covering security incidents, displacement, access constraints, and sector needs
for each selected region. Plain text, no markdown tables.`

func scopeLines(regions []string, dr *model.DateRange) string {
	var sb strings.Builder
	if len(regions) > 0 {
		fmt.Fprintf(&sb, "SELECTED REGIONS: %s\n", strings.Join(regions, ", "))
	}
	if dr != nil {
		fmt.Fprintf(&sb, "DATE WINDOW: %s to %s (inclusive)\n", dr.Start, dr.End)
	}
	return sb.String()
}

func alignPrompt(raw string, regions []string, dr *model.DateRange) string {
	return scopeLines(regions, dr) + "\nREFERENCE TEXT:\n" + raw
}

func briefingPrompt(regions []string, dr *model.DateRange) string {
	p := "Deep research briefing for: " + strings.Join(regions, ", ") + "."
	if dr != nil {
		p += fmt.Sprintf(" Focus on dates: %s to %s.", dr.Start, dr.End)
	}
	return p
}

func condensePrompt(regions []string, dr *model.DateRange, excerpts []excerpt) string {
	var sb strings.Builder
	sb.WriteString(scopeLines(regions, dr))
	sb.WriteString("\nBuild the briefing only from the following source excerpts.\n")
	for i, ex := range excerpts {
		fmt.Fprintf(&sb, "\n[%d] %s (%s)\n", i+1, ex.title, ex.region)
		if ex.published != "" {
			fmt.Fprintf(&sb, "Published: %s\n", ex.published)
		}
		sb.WriteString(ex.text)
		sb.WriteString("\n")
	}
	return sb.String()
}

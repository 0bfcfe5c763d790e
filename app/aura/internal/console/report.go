package console

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

// RiskColor 风险等级对应的颜色
func RiskColor(level model.RiskLevel) *color.Color {
	switch level {
	case model.RiskCritical:
		return color.New(color.FgRed, color.Bold)
	case model.RiskHigh:
		return color.New(color.FgRed)
	case model.RiskMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// RouteColor 通道状态对应的颜色
func RouteColor(status model.RouteStatus) *color.Color {
	switch status {
	case model.RouteBlocked:
		return color.New(color.FgRed, color.Bold)
	case model.RouteHighRisk:
		return color.New(color.FgRed)
	case model.RouteCaution:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// PrintJSON 缩进输出任意值
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Out, string(data))
	return err
}

// PrintAnalysis 输出态势报告摘要
func PrintAnalysis(r *model.AnalysisResult) {
	PrintSeparator()
	PrintTitle("%s", r.Title)
	fmt.Fprintf(Out, "Risk level: %s\n", RiskColor(r.RiskLevel).Sprint(strings.ToUpper(string(r.RiskLevel))))
	if r.DateRange != nil {
		fmt.Fprintf(Out, "Window:     %s to %s\n", r.DateRange.Start, r.DateRange.End)
	}
	fmt.Fprintf(Out, "\n%s\n", r.Summary)

	p := r.Population
	fmt.Fprintf(Out, "\nPeople in need: %s (women & children %s, elderly & PWD %s)\n",
		p.TotalPiN, p.WomenAndChildren, p.ElderlyAndPWD)
	d := p.Disaggregation
	fmt.Fprintf(Out, "  women %.0f%%  children %.0f%%  men %.0f%%  PWD %.0f%%\n",
		d.WomenPct, d.ChildrenPct, d.MenPct, d.PWDPct)

	if len(r.Sectors) > 0 {
		InfoColor.Fprintln(Out, "\nSectors")
		for _, s := range r.Sectors {
			fmt.Fprintf(Out, "  • %s [%s]: %s\n    → %s\n", s.Sector, s.Severity, s.Findings, s.Intervention)
		}
	}
	if len(r.SupplyForecasting) > 0 {
		InfoColor.Fprintln(Out, "\nSupply forecast")
		for _, s := range r.SupplyForecasting {
			fmt.Fprintf(Out, "  • %s (%s): %s %s, %s, lead time %.0f days\n",
				s.Item, s.Category, s.QuantityNeeded, s.Unit, s.Urgency, s.LeadTimeDays)
		}
	}
	if len(r.Mobility) > 0 {
		InfoColor.Fprintln(Out, "\nMobility")
		for _, m := range r.Mobility {
			fmt.Fprintf(Out, "  • %s: %s. %s\n", m.Route, RouteColor(m.Status).Sprint(m.Status), m.Details)
		}
	}

	InfoColor.Fprintln(Out, "\nTimeline")
	fmt.Fprintf(Out, "  immediate: %s\n  preparedness: %s\n  turnaround: %s\n",
		r.Timeline.Immediate, r.Timeline.Preparedness, r.Timeline.Turnaround)

	PrintCitations(r.Citations)
	PrintSeparator()
}

// PrintDeepDive 输出深度研究摘要
func PrintDeepDive(r *model.DeepDiveResult) {
	PrintSeparator()
	PrintTitle("%s", r.Title)
	fmt.Fprintf(Out, "%s\n", r.Summary)
	for _, t := range r.RegionalTrends {
		InfoColor.Fprintf(Out, "\n%s\n", t.Region)
		for _, item := range t.Trends {
			fmt.Fprintf(Out, "  • %s\n", item)
		}
	}
	if len(r.StrategicActions) > 0 {
		InfoColor.Fprintln(Out, "\nStrategic actions")
		for _, a := range r.StrategicActions {
			fmt.Fprintf(Out, "  • %s\n", a)
		}
	}
	PrintCitations(r.Citations)
	PrintSeparator()
}

// PrintCitations 输出来源列表
func PrintCitations(cites []model.Citation) {
	if len(cites) == 0 {
		return
	}
	InfoColor.Fprintln(Out, "\nSources")
	for i, c := range cites {
		fmt.Fprintf(Out, "  [%d] %s %s\n", i+1, c.Title, c.URI)
	}
}

// PrintReportList 以表格输出归档列表
func PrintReportList(reports []model.SavedReport) {
	if len(reports) == 0 {
		PrintInfo("No reports found")
		return
	}
	for _, r := range reports {
		fmt.Fprintf(Out, "%-36s  %s  %s  %s\n",
			r.ReportID,
			r.Time().Format("2006-01-02 15:04"),
			RiskColor(r.RiskLevel).Sprintf("%-8s", r.RiskLevel),
			r.Title)
	}
}

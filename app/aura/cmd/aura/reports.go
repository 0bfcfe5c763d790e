package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/aura/app/aura/internal/console"
	"github.com/iWorld-y/aura/app/aura/pkg/archive"
)

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse and manage the report archive",
	}

	var (
		query      string
		start, end string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := optionalDay(start)
			if err != nil {
				return err
			}
			to, err := optionalDay(end)
			if err != nil {
				return err
			}

			store, closeFn, err := openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			reports := archive.Query(store.LoadAll(cmd.Context()), query, from, to)
			if jsonOutput {
				return console.PrintJSON(reports)
			}
			console.PrintReportList(reports)
			return nil
		},
	}
	listCmd.Flags().StringVarP(&query, "query", "q", "", "Match title or summary (case-insensitive)")
	listCmd.Flags().StringVar(&start, "start", "", "Saved on or after this day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&end, "end", "", "Saved on or before this day (YYYY-MM-DD)")

	showCmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Show one archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			report, ok := store.Get(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("report %s not found", args[0])
			}
			if jsonOutput {
				return console.PrintJSON(report)
			}
			console.PrintInfo("Report %s saved at %s", report.ReportID, report.Timestamp)
			console.PrintAnalysis(&report.AnalysisResult)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <report-id>",
		Short: "Delete one archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := store.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete report: %w", err)
			}
			console.PrintSuccess("Report %s deleted", args[0])
			return nil
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every archived report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !confirm("This will delete all archived reports. Continue?") {
				console.PrintInfo("Operation cancelled by user")
				return nil
			}
			store, closeFn, err := openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			console.PrintSuccess("Archive cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	cmd.AddCommand(listCmd, showCmd, deleteCmd, clearCmd)
	return cmd
}

func optionalDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := archive.ParseDay(s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &d, nil
}

func confirm(prompt string) bool {
	console.WarningColor.Printf("%s (y/N): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

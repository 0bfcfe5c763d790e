package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/aura/app/aura/internal/console"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

type scopeFlags struct {
	regions []string
	start   string
	end     string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.regions, "region", "r", nil, "Region to scope the request to (repeatable)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start of the date window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End of the date window (YYYY-MM-DD)")
}

func (f *scopeFlags) dateRange() *model.DateRange {
	if f.start == "" && f.end == "" {
		return nil
	}
	return &model.DateRange{Start: f.start, End: f.end}
}

func newSynthesizeCmd() *cobra.Command {
	var (
		scope        scopeFlags
		topic        string
		referenceArg string
		fetchContext bool
		align        bool
		noSave       bool
	)

	cmd := &cobra.Command{
		Use:   "synthesize [report-file|-]",
		Short: "Synthesize a situation report from a field report or a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in := engine.Input{Topic: topic, Regions: scope.regions}
			if len(args) == 1 {
				text, err := readInput(args[0])
				if err != nil {
					return err
				}
				in.FreeText = text
			}

			sc := engine.Scope{Regions: scope.regions, DateRange: scope.dateRange()}
			if referenceArg != "" {
				text, err := readInput(referenceArg)
				if err != nil {
					return err
				}
				sc.ReferenceText = text
			}

			if fetchContext || align {
				svc, err := newAlignment(ctx)
				if err != nil {
					return err
				}
				if fetchContext {
					console.PrintInfo("Fetching scoped context for %s", strings.Join(scope.regions, ", "))
					fetched, err := svc.FetchScoped(ctx, scope.regions, sc.DateRange)
					if err != nil {
						return fmt.Errorf("failed to fetch context: %w", err)
					}
					sc.ReferenceText = joinNonEmpty(sc.ReferenceText, fetched.Text)
					sc.Citations = fetched.Citations
				}
				if align && sc.ReferenceText != "" {
					sc.ReferenceText = svc.Align(ctx, sc.ReferenceText, scope.regions, sc.DateRange)
				}
			}

			eng, err := newEngine(ctx)
			if err != nil {
				return err
			}
			console.PrintInfo("Synthesizing situation report...")
			result, err := eng.Synthesize(ctx, in, sc)
			if err != nil {
				return fmt.Errorf("synthesis failed: %w", err)
			}

			if !noSave {
				store, closeFn, err := openArchive()
				if err != nil {
					return err
				}
				defer closeFn()
				saved, err := store.Append(ctx, result)
				if err != nil {
					return fmt.Errorf("failed to archive report: %w", err)
				}
				if jsonOutput {
					return console.PrintJSON(saved)
				}
				console.PrintAnalysis(&saved.AnalysisResult)
				console.PrintSuccess("Archived as %s", saved.ReportID)
				return nil
			}

			if jsonOutput {
				return console.PrintJSON(result)
			}
			console.PrintAnalysis(result)
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Research topic (used when no report file is given)")
	cmd.Flags().StringVar(&referenceArg, "reference", "", "Reference context file (or - for stdin)")
	cmd.Flags().BoolVar(&fetchContext, "fetch-context", false, "Fetch fresh scoped context from open sources first")
	cmd.Flags().BoolVar(&align, "align", false, "Align reference context to the selected regions and window")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the result in the archive")
	return cmd
}

func newDeepDiveCmd() *cobra.Command {
	var (
		scope scopeFlags
		topic string
	)

	cmd := &cobra.Command{
		Use:   "deepdive",
		Short: "Run grounded cross-regional research on a topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := newEngine(ctx)
			if err != nil {
				return err
			}

			console.PrintInfo("Researching %q...", topic)
			result, err := eng.DeepDive(ctx, topic, scope.regions, engine.Scope{DateRange: scope.dateRange()})
			if err != nil {
				return fmt.Errorf("deep dive failed: %w", err)
			}
			if jsonOutput {
				return console.PrintJSON(result)
			}
			console.PrintDeepDive(result)
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Research topic")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Fetch or align reference context",
	}

	var fetchScope scopeFlags
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Produce a scoped briefing from open sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newAlignment(cmd.Context())
			if err != nil {
				return err
			}
			fetched, err := svc.FetchScoped(cmd.Context(), fetchScope.regions, fetchScope.dateRange())
			if err != nil {
				return fmt.Errorf("failed to fetch context: %w", err)
			}
			if jsonOutput {
				return console.PrintJSON(fetched)
			}
			fmt.Fprintln(console.Out, fetched.Text)
			console.PrintCitations(fetched.Citations)
			return nil
		},
	}
	fetchScope.register(fetchCmd)

	var alignScope scopeFlags
	alignCmd := &cobra.Command{
		Use:   "align [file|-]",
		Short: "Keep only the passages relevant to the selected regions and window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			svc, err := newAlignment(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(console.Out, svc.Align(cmd.Context(), raw, alignScope.regions, alignScope.dateRange()))
			return nil
		},
	}
	alignScope.register(alignCmd)

	cmd.AddCommand(fetchCmd, alignCmd)
	return cmd
}

// readInput 读取文件，"-" 表示标准输入
func readInput(name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/aura/app/aura/internal/console"
	"github.com/iWorld-y/aura/app/aura/pkg/alignment"
	"github.com/iWorld-y/aura/app/aura/pkg/archive"
	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/logger"
	"github.com/iWorld-y/aura/app/aura/pkg/search/factory"
	"github.com/iWorld-y/aura/app/aura/pkg/storage"
)

var (
	configFile string
	jsonOutput bool

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aura",
		Short: "Aura - humanitarian intelligence synthesis",
		Long: `Aura turns free-text field reports or a researched topic into a structured
situation report (risk, sectors, supplies, mobility, timeline, gender lens)
and keeps a bounded local archive of past reports.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newSynthesizeCmd(), newDeepDiveCmd(), newContextCmd(), newReportsCmd())

	if err := rootCmd.Execute(); err != nil {
		console.PrintError("Error: %v", err)
		os.Exit(1)
	}
}

// setup 加载配置并初始化日志
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.InitLogger(c.Log.Level, c.Log.File); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	cfg = c
	return nil
}

func newReasoner(ctx context.Context) (llm.Reasoner, error) {
	r, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init reasoner: %w", err)
	}
	return r, nil
}

func newEngine(ctx context.Context) (*engine.Engine, error) {
	r, err := newReasoner(ctx)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg, r), nil
}

func newAlignment(ctx context.Context) (*alignment.Service, error) {
	r, err := newReasoner(ctx)
	if err != nil {
		return nil, err
	}
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init searcher: %w", err)
	}
	return alignment.New(cfg, r, searcher), nil
}

// openArchive 返回归档及关闭函数
func openArchive() (*archive.Store, func(), error) {
	blob, err := storage.Open(cfg.Archive)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}
	store := archive.NewStore(blob, archive.WithKey(cfg.Archive.Key))
	return store, func() {
		if err := blob.Close(); err != nil {
			logger.Log.Warnf("关闭归档存储失败: %v", err)
		}
	}, nil
}

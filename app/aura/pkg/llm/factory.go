package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/logger"
)

// New 根据配置创建推理后端，并套上限流
func New(ctx context.Context, cfg *config.Config) (Reasoner, error) {
	var (
		backend Reasoner
		err     error
	)
	switch strings.ToLower(cfg.LLM.Provider) {
	case "gemini", "":
		backend, err = NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	case "openai":
		backend, err = NewOpenAI(ctx, cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("推理服务已配置: provider=%s model=%s qps=%d rpm=%d",
		cfg.LLM.Provider, cfg.LLM.Model, cfg.Concurrency.QPS, cfg.Concurrency.RPM)
	return NewLimited(backend, cfg.Concurrency.QPS, cfg.Concurrency.RPM), nil
}

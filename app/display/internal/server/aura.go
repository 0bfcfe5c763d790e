package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/aura/app/aura/pkg/alignment"
	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	auraLogger "github.com/iWorld-y/aura/app/aura/pkg/logger"
	"github.com/iWorld-y/aura/app/aura/pkg/search"
	"github.com/iWorld-y/aura/app/aura/pkg/search/factory"
	"github.com/iWorld-y/aura/app/display/internal/repo"
)

// NewReasoner 初始化推理服务，同时按 aura 配置初始化管线日志
func NewReasoner(c *config.Config, logger log.Logger) (llm.Reasoner, error) {
	if err := auraLogger.InitLogger(c.Log.Level, c.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init aura logger: %v", err)
		_ = auraLogger.InitLogger("info", "") // 降级处理
	}

	r, err := llm.New(context.Background(), c)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init reasoner: %v", err)
		return nil, err
	}
	return r, nil
}

// NewSearcher 按配置选择检索服务，未配置时返回 nil，简报改用模型 grounding
func NewSearcher(c *config.Config) (search.Searcher, error) {
	return factory.NewSearcher(c)
}

// NewSynthesizer 初始化合成引擎
func NewSynthesizer(c *config.Config, r llm.Reasoner) repo.Synthesizer {
	return engine.New(c, r)
}

// NewContextProvider 初始化背景资料服务
func NewContextProvider(c *config.Config, r llm.Reasoner, s search.Searcher) repo.ContextProvider {
	return alignment.New(c, r, s)
}

package factory

import (
	"fmt"

	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/search"
	"github.com/iWorld-y/aura/app/aura/pkg/search/feed"
	"github.com/iWorld-y/aura/app/aura/pkg/search/searxng"
	"github.com/iWorld-y/aura/app/aura/pkg/search/tavily"
)

// NewSearcher 根据配置创建搜索实例
// provider 未配置时返回 nil，调用方退回到模型自带的 grounding 检索
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		// 默认回退逻辑：如果有 tavily key，则使用 tavily
		if cfg.Search.Tavily.APIKey == "" {
			return nil, nil
		}
		provider = "tavily"
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		baseURL := cfg.Search.SearXNG.BaseURL
		if baseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(baseURL, cfg.Search.SearXNG.Timeout), nil

	case "feed":
		if len(cfg.Search.Feed.URLs) == 0 {
			return nil, fmt.Errorf("feed urls are missing")
		}
		return feed.NewClient(cfg.Search.Feed.URLs, cfg.Search.Feed.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}

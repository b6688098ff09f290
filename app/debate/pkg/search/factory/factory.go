package factory

import (
	"fmt"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/config"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search/searxng"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search/tavily"
)

// NewSearcher 根据配置创建新闻搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Enrich.NewsProvider
	if provider == "" {
		if cfg.Enrich.Tavily.APIKey != "" {
			provider = "tavily"
		} else {
			return nil, fmt.Errorf("news provider not configured")
		}
	}

	switch provider {
	case "tavily":
		if cfg.Enrich.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Enrich.Tavily.APIKey, cfg.Enrich.Timeout), nil

	case "searxng":
		if cfg.Enrich.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		timeout := cfg.Enrich.SearXNG.Timeout
		if timeout == 0 {
			timeout = cfg.Enrich.Timeout
		}
		return searxng.NewClient(cfg.Enrich.SearXNG.BaseURL, timeout), nil

	default:
		return nil, fmt.Errorf("unknown news provider: %s", provider)
	}
}

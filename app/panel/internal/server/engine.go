package server

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/config"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/engine"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/enrich"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	debateLogger "github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search/factory"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
	"github.com/biopanel-ai/biopanel/app/panel/internal/conf"
)

// NewDebateStore 依据数据库配置选择存储实现，没配数据库就退回内存存储
func NewDebateStore(c *conf.Data, logger log.Logger) (storage.Store, func(), error) {
	if c == nil || c.Database == nil || c.Database.Source == "" {
		log.NewHelper(logger).Warn("no database configured, using in-memory session store")
		return storage.NewMemoryStore(), func() {}, nil
	}
	return storage.NewPostgresStore(c.Database.Source)
}

// NewHub 进程内事件分发器
func NewHub() *storage.Hub {
	return storage.NewHub()
}

// NewDebateEngine 初始化辩论引擎
func NewDebateEngine(c *conf.Debate, store storage.Store, hub *storage.Hub, logger log.Logger) (*engine.Engine, error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Llm == nil {
		return nil, errors.New("debate.llm config is required")
	}

	// 将 internal/conf.Debate 转换为 pkg/config.Config
	cfg := &config.Config{
		LLM: config.LLMConfig{
			BaseURL:        c.Llm.BaseUrl,
			APIKey:         c.Llm.ApiKey,
			Model:          c.Llm.Model,
			TimeoutSeconds: int(c.Llm.TimeoutSeconds),
			MaxRetries:     int(c.Llm.MaxRetries),
		},
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{
			Level: c.Log.Level,
			File:  c.Log.File,
		}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}
	if c.Enrich != nil {
		cfg.Enrich = config.EnrichConfig{
			NewsProvider: c.Enrich.NewsProvider,
			Timeout:      int(c.Enrich.Timeout),
		}
		if c.Enrich.Tavily != nil {
			cfg.Enrich.Tavily = config.TavilyConfig{APIKey: c.Enrich.Tavily.ApiKey}
		}
		if c.Enrich.Searxng != nil {
			cfg.Enrich.SearXNG = config.SearXNGConfig{
				BaseURL: c.Enrich.Searxng.BaseUrl,
				Timeout: int(c.Enrich.Searxng.Timeout),
			}
		}
	}

	// 初始化日志
	if err := debateLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init debate logger: %v", err)
		_ = debateLogger.InitLogger("info", "") // 降级处理
	}

	gen, err := llm.NewClient(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init llm client: %v", err)
		return nil, err
	}

	// 新闻源配置缺失只影响收集的完整度，不阻止服务启动
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		helper.Warnf("news searcher unavailable: %v", err)
		searcher = nil
	}
	enricher := enrich.NewEnricher(cfg, searcher)

	return engine.New(store, hub, gen, enricher), nil
}

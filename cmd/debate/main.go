package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/config"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/engine"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/enrich"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search/factory"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
)

// 单次执行的命令行入口：对一家公司跑完整条辩论流水线并输出报告 JSON。
// 常驻服务请使用 app/panel。
func main() {
	confPath := flag.String("conf", "configs/config.yaml", "配置文件路径")
	name := flag.String("company", "", "公司名称（必填）")
	ticker := flag.String("ticker", "", "股票代码")
	sector := flag.String("sector", "기타", "行业板块")
	desc := flag.String("desc", "", "公司简介")
	out := flag.String("out", "report.json", "报告输出路径")
	flag.Parse()

	if *name == "" {
		log.Fatal("参数错误: 未指定 -company")
	}
	if !model.ValidSector(*sector) {
		log.Fatalf("参数错误: 未知板块 %q", *sector)
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动投资辩论...")

	ctx := context.Background()

	// 3. 初始化存储：配了数据库就落库，否则仅在内存中跑完并输出文件
	var store storage.Store
	if cfg.DB.Host != "" {
		source := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
		s, cleanup, err := storage.NewPostgresStore(source)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 将仅生成报告文件。", err)
			store = storage.NewMemoryStore()
		} else {
			defer cleanup()
			store = s
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，使用内存存储")
		store = storage.NewMemoryStore()
	}

	// 4. 初始化 LLM
	gen, err := llm.NewClient(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("LLM 初始化失败: %v", err)
	}

	// 5. 初始化数据收集器
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		logger.Log.Warnf("新闻搜索不可用: %v", err)
		searcher = nil
	}
	enricher := enrich.NewEnricher(cfg, searcher)

	// 6. 创建会话并执行流水线
	company := model.CompanyInput{Name: *name, Ticker: *ticker, Sector: *sector, Description: *desc}
	session := &model.Session{
		ID:              uuid.NewString(),
		UserID:          "cli",
		Company:         company,
		Status:          model.StatusEnriching,
		CurrentPhase:    model.PhaseEnrichment,
		EnrichmentSteps: enrich.InitialSteps(),
		CreatedAt:       time.Now(),
	}
	if err := store.CreateSession(ctx, session); err != nil {
		logger.Log.Fatalf("创建会话失败: %v", err)
	}

	eng := engine.New(store, storage.NewHub(), gen, enricher)
	if err := eng.Run(ctx, session.ID, company); err != nil {
		logger.Log.Fatalf("辩论失败: %v", err)
	}

	// 7. 输出最终报告
	done, err := store.GetSession(ctx, session.ID)
	if err != nil {
		logger.Log.Fatalf("读取会话失败: %v", err)
	}
	data, err := json.MarshalIndent(done.Report, "", "  ")
	if err != nil {
		logger.Log.Fatalf("序列化报告失败: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Log.Fatalf("写入报告失败: %v", err)
	}
	logger.Log.Infof("报告已生成: %s (综合评分 %d, 消耗 %d tokens)", *out, done.Report.OverallScore, done.TotalTokens)
}

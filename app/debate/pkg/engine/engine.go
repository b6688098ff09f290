// Package engine 辩论流水线编排器。
// 按固定阶段推进：数据收集、独立分析、冲突检测、交叉质询、最终意见、综合报告。
// 单个专家失败记为降级并继续，只有全员失败才让会话失败。
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/conflict"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/enrich"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/parse"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/persona"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/prompt"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/synthesis"
)

// 各阶段起点的整体进度
const (
	progressIndependent = 20
	progressConflict    = 45
	progressCrossExam   = 55
	progressVerdict     = 75
	progressSynthesis   = 90
)

// Engine 流水线编排器，单个实例可并发承载多个会话
type Engine struct {
	store    storage.Store
	hub      *storage.Hub
	gen      llm.Generator
	registry *persona.Registry
	enricher *enrich.Enricher
	detector *conflict.Detector
	synth    *synthesis.Synthesizer
}

func New(store storage.Store, hub *storage.Hub, gen llm.Generator, enricher *enrich.Enricher) *Engine {
	return &Engine{
		store:    store,
		hub:      hub,
		gen:      gen,
		registry: persona.NewRegistry(),
		enricher: enricher,
		detector: conflict.NewDetector(gen),
		synth:    synthesis.NewSynthesizer(gen),
	}
}

// agentState 一位专家贯穿各阶段的产出
type agentState struct {
	profile   *persona.Profile
	analysis  string
	eval      model.Evaluation
	rebuttal  string
	agreement model.AgreementLevel
	verdict   *synthesis.Verdict
}

// Run 执行整条流水线。会话须已由调用方创建并处于 enriching 状态。
// 返回错误时会话已被标记为 failed。
func (e *Engine) Run(ctx context.Context, sessionID string, company model.CompanyInput) error {
	logger.Log.Infof("辩论会话启动 [%s]: %s", sessionID, company.Name)

	if err := e.run(ctx, sessionID, company); err != nil {
		logger.Log.Errorf("辩论会话失败 [%s]: %v", sessionID, err)
		if serr := e.store.SetFailed(ctx, sessionID, err.Error()); serr != nil {
			logger.Log.Errorf("写入失败状态出错 [%s]: %v", sessionID, serr)
		}
		e.hub.Publish(storage.Event{Type: "error", SessionID: sessionID, Payload: err.Error()})
		return err
	}

	logger.Log.Infof("辩论会话完成 [%s]", sessionID)
	return nil
}

func (e *Engine) run(ctx context.Context, sessionID string, company model.CompanyInput) error {
	enriched := e.runEnrichment(ctx, sessionID, company)

	var tokenMu sync.Mutex
	totalTokens := 0
	addTokens := func(c *llm.Completion) {
		tokenMu.Lock()
		totalTokens += c.InputTokens + c.OutputTokens
		tokenMu.Unlock()
	}

	// 独立分析
	e.setPhase(ctx, sessionID, model.StatusAnalyzing, model.PhaseIndependent, progressIndependent)
	agents := e.runIndependent(ctx, sessionID, company, enriched, addTokens)
	if len(agents) == 0 {
		return errors.New("모든 전문가 분석이 실패했습니다")
	}

	// 冲突检测
	e.setPhase(ctx, sessionID, model.StatusAnalyzing, model.PhaseConflict, progressConflict)
	conflicts := e.runConflictDetection(ctx, sessionID, agents)

	// 交叉质询
	e.setPhase(ctx, sessionID, model.StatusDebating, model.PhaseCrossExam, progressCrossExam)
	e.runCrossExam(ctx, sessionID, agents, conflicts, addTokens)

	// 最终意见
	e.setPhase(ctx, sessionID, model.StatusDebating, model.PhaseVerdict, progressVerdict)
	e.runVerdicts(ctx, sessionID, company, agents, addTokens)

	// 综合报告
	e.setPhase(ctx, sessionID, model.StatusSynthesizing, model.PhaseSynthesis, progressSynthesis)
	report := e.runSynthesis(ctx, company, agents, conflicts)

	if err := e.store.SetReport(ctx, sessionID, report, totalTokens); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	e.hub.Publish(storage.Event{Type: "report", SessionID: sessionID, Payload: report})
	e.setPhase(ctx, sessionID, model.StatusCompleted, model.PhaseCompleted, 100)
	return nil
}

// runEnrichment 收集外部数据。整个阶段尽力而为，出错只影响数据完整度。
func (e *Engine) runEnrichment(ctx context.Context, sessionID string, company model.CompanyInput) *model.EnrichedData {
	if e.enricher == nil {
		return &model.EnrichedData{}
	}

	data, steps := e.enricher.Run(ctx, company, func(steps []model.EnrichmentStep, progress int) {
		if err := e.store.SetEnrichmentSteps(ctx, sessionID, steps); err != nil {
			logger.Log.Warnf("写入收集步骤失败 [%s]: %v", sessionID, err)
		}
		e.setPhase(ctx, sessionID, model.StatusEnriching, model.PhaseEnrichment, progress)
		e.hub.Publish(storage.Event{Type: "enrichment", SessionID: sessionID, Payload: steps})
	})
	if err := e.store.SetEnrichmentSteps(ctx, sessionID, steps); err != nil {
		logger.Log.Warnf("写入收集步骤失败 [%s]: %v", sessionID, err)
	}
	if err := e.store.SetEnrichedData(ctx, sessionID, data); err != nil {
		logger.Log.Warnf("写入收集数据失败 [%s]: %v", sessionID, err)
	}
	return data
}

// runIndependent 五位专家并行做独立分析，返回成功者
func (e *Engine) runIndependent(ctx context.Context, sessionID string, company model.CompanyInput,
	enriched *model.EnrichedData, addTokens func(*llm.Completion)) map[model.PersonaID]*agentState {

	agents := make(map[model.PersonaID]*agentState)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range e.registry.IDs() {
		p := e.registry.MustGet(id)
		wg.Add(1)
		go func(p *persona.Profile) {
			defer wg.Done()

			user, err := prompt.Independent(p, company, enriched)
			if err == nil {
				var c *llm.Completion
				c, err = e.gen.Generate(ctx, prompt.System(p, model.PhaseIndependent), user)
				if err == nil {
					addTokens(c)
					eval := parse.Evaluation(c.Content)
					e.appendMessage(ctx, sessionID, &model.DebateMessage{
						PersonaID:   p.ID,
						PersonaName: p.Name,
						PersonaRole: p.Title,
						Phase:       model.PhaseIndependent,
						Content:     c.Content,
						Evaluation:  &eval,
						TokenCount:  c.OutputTokens,
					})
					mu.Lock()
					agents[p.ID] = &agentState{profile: p, analysis: c.Content, eval: eval}
					mu.Unlock()
					return
				}
			}

			logger.Log.Errorf("独立分析失败 [%s/%s]: %v", sessionID, p.ID, err)
			e.degrade(ctx, sessionID, p.ID, model.PhaseIndependent, err)
		}(p)
	}
	wg.Wait()
	return agents
}

// runConflictDetection 检测分析间的冲突并作为系统消息写入时间线
func (e *Engine) runConflictDetection(ctx context.Context, sessionID string,
	agents map[model.PersonaID]*agentState) []model.Conflict {

	analyses := make([]conflict.Analysis, 0, len(agents))
	for _, id := range model.PersonaIDs {
		if a, ok := agents[id]; ok {
			analyses = append(analyses, conflict.Analysis{PersonaID: id, Narrative: a.analysis})
		}
	}

	conflicts := e.detector.Detect(ctx, analyses)
	if err := e.store.SaveConflicts(ctx, sessionID, conflicts); err != nil {
		logger.Log.Warnf("写入冲突失败 [%s]: %v", sessionID, err)
	}
	e.hub.Publish(storage.Event{Type: "conflicts", SessionID: sessionID, Payload: conflicts})

	if len(conflicts) > 0 {
		e.appendMessage(ctx, sessionID, &model.DebateMessage{
			PersonaID:   "system",
			PersonaName: "System",
			PersonaRole: "system",
			Phase:       model.PhaseConflict,
			Content:     fmt.Sprintf("의견 충돌 %d건이 감지되었습니다", len(conflicts)),
		})
	}
	return conflicts
}

// runCrossExam 按固定顺序逐位质询。失败记降级但不淘汰，
// 该专家之后仍以独立分析参与最终意见。
func (e *Engine) runCrossExam(ctx context.Context, sessionID string,
	agents map[model.PersonaID]*agentState, conflicts []model.Conflict, addTokens func(*llm.Completion)) {

	for _, id := range model.PersonaIDs {
		a, ok := agents[id]
		if !ok {
			continue
		}

		others := make([]prompt.OtherAnalysis, 0, len(agents)-1)
		for _, oid := range model.PersonaIDs {
			if oid == id {
				continue
			}
			if o, ok := agents[oid]; ok {
				others = append(others, prompt.OtherAnalysis{Profile: o.profile, Narrative: o.analysis})
			}
		}

		user := prompt.CrossExam(a.profile, a.analysis, others, conflicts)
		c, err := e.gen.Generate(ctx, prompt.System(a.profile, model.PhaseCrossExam), user)
		if err != nil {
			logger.Log.Errorf("交叉质询失败 [%s/%s]: %v", sessionID, id, err)
			e.degrade(ctx, sessionID, id, model.PhaseCrossExam, err)
			continue
		}
		addTokens(c)

		a.rebuttal = c.Content
		a.agreement = parse.Agreement(c.Content)
		e.appendMessage(ctx, sessionID, &model.DebateMessage{
			PersonaID:      a.profile.ID,
			PersonaName:    a.profile.Name,
			PersonaRole:    a.profile.Title,
			Phase:          model.PhaseCrossExam,
			Content:        c.Content,
			AgreementLevel: a.agreement,
			TokenCount:     c.OutputTokens,
		})
	}
}

// runVerdicts 并行征集最终意见。质询降级的专家用自己的独立分析继续。
func (e *Engine) runVerdicts(ctx context.Context, sessionID string, company model.CompanyInput,
	agents map[model.PersonaID]*agentState, addTokens func(*llm.Completion)) {

	var wg sync.WaitGroup
	for _, a := range agents {
		wg.Add(1)
		go func(a *agentState) {
			defer wg.Done()

			user := prompt.Verdict(a.profile, company, a.analysis, a.rebuttal)
			c, err := e.gen.Generate(ctx, prompt.System(a.profile, model.PhaseVerdict), user)
			if err != nil {
				logger.Log.Errorf("最终意见失败 [%s/%s]: %v", sessionID, a.profile.ID, err)
				e.degrade(ctx, sessionID, a.profile.ID, model.PhaseVerdict, err)
				a.verdict = &synthesis.Verdict{
					Profile:      a.profile,
					Degraded:     true,
					DegradedNote: "최종 의견을 생성하지 못했습니다",
				}
				return
			}
			addTokens(c)

			eval := parse.Evaluation(c.Content)
			e.appendMessage(ctx, sessionID, &model.DebateMessage{
				PersonaID:   a.profile.ID,
				PersonaName: a.profile.Name,
				PersonaRole: a.profile.Title,
				Phase:       model.PhaseVerdict,
				Content:     c.Content,
				Evaluation:  &eval,
				TokenCount:  c.OutputTokens,
			})
			a.verdict = &synthesis.Verdict{Profile: a.profile, Content: c.Content, Evaluation: eval}
		}(a)
	}
	wg.Wait()
}

// runSynthesis 汇总成最终报告。独立分析阶段就降级的专家
// 也以降级条目出现在报告里，让五个席位始终可见。
func (e *Engine) runSynthesis(ctx context.Context, company model.CompanyInput,
	agents map[model.PersonaID]*agentState, conflicts []model.Conflict) *model.FinalReport {

	analyses := make([]synthesis.Analysis, 0, len(agents))
	verdicts := make([]synthesis.Verdict, 0, len(model.PersonaIDs))
	for _, id := range model.PersonaIDs {
		a, ok := agents[id]
		if !ok {
			verdicts = append(verdicts, synthesis.Verdict{
				Profile:      e.registry.MustGet(id),
				Degraded:     true,
				DegradedNote: "분석 단계에서 참여가 중단되었습니다",
			})
			continue
		}
		analyses = append(analyses, synthesis.Analysis{PersonaID: id, Narrative: a.analysis})
		verdicts = append(verdicts, *a.verdict)
	}

	return e.synth.Synthesize(ctx, company, analyses, conflicts, verdicts)
}

func (e *Engine) setPhase(ctx context.Context, sessionID string, status model.Status, phase model.Phase, progress int) {
	if err := e.store.SetPhase(ctx, sessionID, status, phase, progress); err != nil {
		logger.Log.Warnf("写入阶段失败 [%s]: %v", sessionID, err)
	}
	e.hub.Publish(storage.Event{Type: "phase", SessionID: sessionID, Payload: map[string]any{
		"status":   status,
		"phase":    phase,
		"progress": progress,
	}})
}

func (e *Engine) appendMessage(ctx context.Context, sessionID string, msg *model.DebateMessage) {
	if err := e.store.AppendMessage(ctx, sessionID, msg); err != nil {
		logger.Log.Warnf("写入消息失败 [%s]: %v", sessionID, err)
		return
	}
	e.hub.Publish(storage.Event{Type: "message", SessionID: sessionID, Payload: msg})
}

func (e *Engine) degrade(ctx context.Context, sessionID string, id model.PersonaID, phase model.Phase, err error) {
	reason := "unknown"
	if err != nil {
		reason = err.Error()
	}
	if serr := e.store.AddDegradedSlot(ctx, sessionID, model.AgentSlot{
		PersonaID: id,
		Phase:     phase,
		Reason:    reason,
	}); serr != nil {
		logger.Log.Warnf("写入降级记录失败 [%s]: %v", sessionID, serr)
	}
}

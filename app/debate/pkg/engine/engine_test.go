package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
)

var testCompany = model.CompanyInput{Name: "알테오젠", Ticker: "196170", Sector: "바이오시밀러"}

const analysisReply = "임상 데이터가 견고합니다.\n```json\n{\"scores\": {\"clinicalValue\": 80}, \"keyFindings\": [\"ADC 플랫폼\"], \"risks\": [], \"opportunities\": []}\n```"

const crossExamReply = "타 전문가 의견에 일부 동의합니다.\n```json\n{\"agreementLevel\": \"partially_agree\"}\n```"

const verdictReply = "최종적으로 긍정적입니다.\n```json\n{\"scores\": {\"clinicalValue\": 90, \"financialHealth\": 70}, \"keyFindings\": [\"성장성\"], \"risks\": [\"경쟁 심화\"], \"opportunities\": []}\n```"

const conflictReply = "```json\n[{\"topic\": \"임상 가치\", \"description\": \"평가가 갈립니다\", \"agentPositions\": [{\"personaId\": \"oncologist\", \"position\": \"긍정\", \"confidence\": 0.8}, {\"personaId\": \"analyst\", \"position\": \"부정\", \"confidence\": 0.7}], \"severity\": \"moderate\"}]\n```"

const reportReply = "```json\n{\"executiveSummary\": \"종합 요약\", \"overallScore\": 1, \"consensusPoints\": [\"플랫폼 가치\"], \"dissensusPoints\": [], \"pipelineAnalysis\": [], \"riskMatrix\": [], \"competitorLandscape\": [], \"openQuestions\": [], \"recommendedExperts\": [], \"agentVerdicts\": []}\n```"

// scriptedGenerator 按系统提示词分流的脚本化模型。
// failPersonas 中的专家在独立分析阶段直接报错，
// failVerdictPersonas 中的专家在最终意见阶段报错。
type scriptedGenerator struct {
	mu                  sync.Mutex
	calls               []string
	failPersonas        []string
	failVerdictPersonas []string
	failAll             bool
}

func (g *scriptedGenerator) Generate(_ context.Context, system, user string) (*llm.Completion, error) {
	g.mu.Lock()
	g.calls = append(g.calls, system)
	g.mu.Unlock()

	if g.failAll {
		return nil, errors.New("boom")
	}

	reply := func(content string) *llm.Completion {
		return &llm.Completion{Content: content, InputTokens: 100, OutputTokens: 50}
	}

	switch {
	case strings.Contains(system, "토론 분석 전문가"):
		return reply(conflictReply), nil
	case strings.Contains(system, "리포트 작성 전문가"):
		return reply(reportReply), nil
	case strings.Contains(system, "교차 검토 토론 중입니다"):
		return reply(crossExamReply), nil
	case strings.Contains(system, "최종 투자 의견을 제시합니다"):
		for _, name := range g.failVerdictPersonas {
			if strings.Contains(system, name) {
				return nil, errors.New("llm timeout")
			}
		}
		return reply(verdictReply), nil
	default:
		for _, name := range g.failPersonas {
			if strings.Contains(system, name) {
				return nil, errors.New("llm timeout")
			}
		}
		return reply(analysisReply), nil
	}
}

func newTestSession(t *testing.T, store storage.Store) string {
	t.Helper()
	s := &model.Session{
		ID:           "s1",
		UserID:       "u1",
		Company:      testCompany,
		Status:       model.StatusEnriching,
		CurrentPhase: model.PhaseEnrichment,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.CreateSession(context.Background(), s))
	return s.ID
}

func TestRunFullPipeline(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	gen := &scriptedGenerator{}
	e := New(store, storage.NewHub(), gen, nil)
	id := newTestSession(t, store)

	require.NoError(t, e.Run(ctx, id, testCompany))

	s, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, s.Status)
	assert.Equal(t, model.PhaseCompleted, s.CurrentPhase)
	assert.Equal(t, 100, s.Progress)
	require.NotNil(t, s.Report)
	assert.Equal(t, "종합 요약", s.Report.ExecutiveSummary)
	require.Len(t, s.Conflicts, 1)
	assert.Empty(t, s.DegradedSlots)

	// 5 次分析 + 1 次冲突检测 + 5 次质询 + 5 次意见 + 1 次综合
	assert.Len(t, gen.calls, 17)
	// 分析、质询、意见各 5 次，每次 150 token
	assert.Equal(t, 15*150, s.TotalTokens)

	// 报告分数以本地聚合为准，不采信模型给的 overallScore
	assert.Equal(t, 90, s.Report.DimensionScores.ClinicalValue)
	assert.Equal(t, 70, s.Report.DimensionScores.FinancialHealth)
	require.Len(t, s.Report.AgentVerdicts, 5)
	for _, v := range s.Report.AgentVerdicts {
		assert.False(t, v.Degraded)
	}

	msgs, err := store.ListMessages(ctx, id)
	require.NoError(t, err)
	// 5 分析 + 1 系统冲突消息 + 5 质询 + 5 意见
	require.Len(t, msgs, 16)
	for i, m := range msgs {
		assert.Equal(t, i, m.Order)
	}

	// 时间线按阶段推进
	assert.Equal(t, model.PhaseIndependent, msgs[0].Phase)
	assert.Equal(t, model.PhaseConflict, msgs[5].Phase)
	assert.Equal(t, "System", msgs[5].PersonaName)
	assert.Contains(t, msgs[5].Content, "의견 충돌 1건")
	assert.Equal(t, model.PhaseCrossExam, msgs[6].Phase)
	assert.Equal(t, model.PartiallyAgree, msgs[6].AgreementLevel)
	assert.Equal(t, model.PhaseVerdict, msgs[11].Phase)
}

func TestRunPartialDegradation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	gen := &scriptedGenerator{failPersonas: []string{"이현우"}}
	e := New(store, storage.NewHub(), gen, nil)
	id := newTestSession(t, store)

	require.NoError(t, e.Run(ctx, id, testCompany))

	s, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, s.Status, "单个专家失败不影响会话完成")

	require.Len(t, s.DegradedSlots, 1)
	assert.Equal(t, model.PersonaAnalyst, s.DegradedSlots[0].PersonaID)
	assert.Equal(t, model.PhaseIndependent, s.DegradedSlots[0].Phase)
	assert.Equal(t, "llm timeout", s.DegradedSlots[0].Reason)

	// 缺席专家在报告中保留席位并标记降级
	require.NotNil(t, s.Report)
	require.Len(t, s.Report.AgentVerdicts, 5)
	var degraded *model.AgentVerdict
	for i := range s.Report.AgentVerdicts {
		if s.Report.AgentVerdicts[i].PersonaID == model.PersonaAnalyst {
			degraded = &s.Report.AgentVerdicts[i]
		}
	}
	require.NotNil(t, degraded)
	assert.True(t, degraded.Degraded)
	assert.Empty(t, degraded.Content)

	msgs, err := store.ListMessages(ctx, id)
	require.NoError(t, err)
	// 4 分析 + 1 系统消息 + 4 质询 + 4 意见
	assert.Len(t, msgs, 13)
	for _, m := range msgs {
		assert.NotEqual(t, model.PersonaAnalyst, m.PersonaID, "缺席专家不能留下占位发言")
	}
}

func TestRunVerdictDegradation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	gen := &scriptedGenerator{failVerdictPersonas: []string{"이현우"}}
	e := New(store, storage.NewHub(), gen, nil)
	id := newTestSession(t, store)

	require.NoError(t, e.Run(ctx, id, testCompany))

	s, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, s.Status, "意见阶段失败不影响会话完成")

	require.Len(t, s.DegradedSlots, 1)
	assert.Equal(t, model.PersonaAnalyst, s.DegradedSlots[0].PersonaID)
	assert.Equal(t, model.PhaseVerdict, s.DegradedSlots[0].Phase)

	// 五个席位保留，失败的席位标记降级且不带正文
	require.NotNil(t, s.Report)
	require.Len(t, s.Report.AgentVerdicts, 5)
	for _, v := range s.Report.AgentVerdicts {
		if v.PersonaID == model.PersonaAnalyst {
			assert.True(t, v.Degraded)
			assert.Empty(t, v.Content)
			assert.Equal(t, "최종 의견을 생성하지 못했습니다", v.DegradedNote)
		} else {
			assert.False(t, v.Degraded)
		}
	}

	// 分数只聚合四位健康专家的最终意见
	assert.Equal(t, 90, s.Report.DimensionScores.ClinicalValue)
	assert.Equal(t, 70, s.Report.DimensionScores.FinancialHealth)

	// 5 分析 + 1 系统消息 + 5 质询 + 4 意见
	msgs, err := store.ListMessages(ctx, id)
	require.NoError(t, err)
	assert.Len(t, msgs, 15)

	// 分析、质询各 5 次，意见 4 次成功
	assert.Equal(t, 14*150, s.TotalTokens)
}

func TestRunAllAgentsFail(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	gen := &scriptedGenerator{failAll: true}
	e := New(store, storage.NewHub(), gen, nil)
	id := newTestSession(t, store)

	err := e.Run(ctx, id, testCompany)
	require.Error(t, err)

	s, gerr := store.GetSession(ctx, id)
	require.NoError(t, gerr)
	assert.Equal(t, model.StatusFailed, s.Status)
	assert.Contains(t, s.Error, "모든 전문가 분석이 실패했습니다")
	assert.Nil(t, s.Report)
	assert.Len(t, s.DegradedSlots, 5)
}

func TestRunPublishesEvents(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	hub := storage.NewHub()
	e := New(store, hub, &scriptedGenerator{}, nil)
	id := newTestSession(t, store)

	ch, cancel := hub.Subscribe(id)
	defer cancel()

	require.NoError(t, e.Run(ctx, id, testCompany))
	cancel()

	types := map[string]int{}
	for ev := range ch {
		types[ev.Type]++
	}
	assert.Greater(t, types["phase"], 0)
	assert.Equal(t, 16, types["message"])
	assert.Equal(t, 1, types["conflicts"])
	assert.Equal(t, 1, types["report"])
	assert.Zero(t, types["error"])
}

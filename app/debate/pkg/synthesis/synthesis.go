// Package synthesis 把五位专家的分析、冲突和最终意见综合成投资审查报告。
package synthesis

import (
	"context"
	"fmt"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/parse"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/persona"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/scoring"
)

const systemPrompt = "당신은 바이오/헬스케어 투자 심사 리포트 작성 전문가입니다. 여러 전문가의 분석을 종합하여 구조화된 최종 리포트를 생성합니다."

// Analysis 综合时引用的独立分析摘要
type Analysis struct {
	PersonaID model.PersonaID
	Narrative string
}

// Verdict 一位专家的最终意见。Degraded 表示该专家中途退出，
// 其评分不参与汇总。
type Verdict struct {
	Profile      *persona.Profile
	Content      string
	Evaluation   model.Evaluation
	Degraded     bool
	DegradedNote string
}

// Synthesizer 报告综合器
type Synthesizer struct {
	gen llm.Generator
}

func NewSynthesizer(gen llm.Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Synthesize 生成最终报告。模型负责叙述性内容，
// overallScore、dimensionScores 和 agentVerdicts 始终由本地计算覆盖，
// 不信任模型在这些字段上的输出。
func (s *Synthesizer) Synthesize(ctx context.Context, company model.CompanyInput, analyses []Analysis, conflicts []model.Conflict, verdicts []Verdict) *model.FinalReport {
	rpt := s.narrate(ctx, company, analyses, conflicts, verdicts)

	var activeScores []map[string]float64
	for _, v := range verdicts {
		if !v.Degraded {
			activeScores = append(activeScores, v.Evaluation.Scores)
		}
	}

	rpt.DimensionScores = scoring.Aggregate(activeScores)
	rpt.OverallScore = scoring.Overall(activeScores)

	rpt.AgentVerdicts = make([]model.AgentVerdict, 0, len(verdicts))
	for _, v := range verdicts {
		av := model.AgentVerdict{
			PersonaID:     v.Profile.ID,
			PersonaName:   v.Profile.Name,
			PersonaNameEn: v.Profile.NameEn,
			Degraded:      v.Degraded,
			DegradedNote:  v.DegradedNote,
		}
		if !v.Degraded {
			av.Content = v.Content
			av.Scores = v.Evaluation.Scores
			av.KeyFindings = v.Evaluation.KeyFindings
			av.Risks = v.Evaluation.Risks
			av.Opportunities = v.Evaluation.Opportunities
		}
		rpt.AgentVerdicts = append(rpt.AgentVerdicts, av)
	}

	return rpt
}

// narrate 调用模型生成叙述部分，任何失败都退化为骨架报告
func (s *Synthesizer) narrate(ctx context.Context, company model.CompanyInput, analyses []Analysis, conflicts []model.Conflict, verdicts []Verdict) *model.FinalReport {
	analysisLines := make([]string, 0, len(analyses))
	for _, a := range analyses {
		analysisLines = append(analysisLines, fmt.Sprintf("%s: %s", a.PersonaID, truncate(a.Narrative, 500)))
	}

	conflictLines := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		conflictLines = append(conflictLines, fmt.Sprintf("주제: %s - %s", c.Topic, c.Description))
	}

	verdictLines := make([]string, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Degraded {
			continue
		}
		verdictLines = append(verdictLines, fmt.Sprintf("%s: %s", v.Profile.ID, truncate(v.Content, 300)))
	}

	user := fmt.Sprintf(`다음은 %s에 대한 %d명의 전문가 분석, 토론, 최종 의견입니다.
이를 바탕으로 종합 투자 심사 리포트를 생성하세요.

[독립 분석 요약]
%s

[의견 충돌]
%s

[최종 의견]
%s

반드시 다음 JSON 형태로 응답하세요:
`+"```json\n"+`{
  "executiveSummary": "종합 요약 (3-5문장)",
  "overallScore": 75,
  "dimensionScores": {
    "clinicalValue": 70,
    "regulatoryPath": 65,
    "commercialPotential": 80,
    "competitivePosition": 75,
    "financialHealth": 70,
    "ipStrength": 60
  },
  "pipelineAnalysis": [...],
  "riskMatrix": [...],
  "competitorLandscape": [...],
  "agentVerdicts": [...],
  "consensusPoints": [...],
  "dissensusPoints": [...],
  "openQuestions": [...],
  "recommendedExperts": [...]
}
`+"```",
		company.Name, len(analyses),
		strings.Join(analysisLines, "\n\n"),
		strings.Join(conflictLines, "\n"),
		strings.Join(verdictLines, "\n\n"))

	resp, err := s.gen.Generate(ctx, systemPrompt, user)
	if err != nil {
		logger.Log.Errorf("综合报告调用失败: %v", err)
		return model.EmptyReport("")
	}
	return parse.Report(resp.Content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Package prompt 构造五位专家在各辩论阶段使用的提示词。
// 所有函数都是纯函数，相同输入必然产生相同输出。
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/persona"
)

// parts 单个专家的提示词素材。instruction 中的 %s 为公司名。
type parts struct {
	context     string
	instruction string
	axes        string
}

var partsTable = map[model.PersonaID]parts{
	model.PersonaOncologist:   oncologistParts,
	model.PersonaPharmacist:   pharmacistParts,
	model.PersonaAnalyst:      analystParts,
	model.PersonaRegulatory:   regulatoryParts,
	model.PersonaImmunologist: immunologistParts,
}

// OtherAnalysis 交叉质询时引用的他人分析
type OtherAnalysis struct {
	Profile   *persona.Profile
	Narrative string
}

// Independent 独立分析阶段的用户提示词
func Independent(p *persona.Profile, company model.CompanyInput, enriched *model.EnrichedData) (string, error) {
	pt, ok := partsTable[p.ID]
	if !ok {
		return "", fmt.Errorf("no prompt parts for persona: %s", p.ID)
	}

	data, err := json.MarshalIndent(enriched, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal enriched data: %w", err)
	}

	var b strings.Builder
	b.WriteString(pt.context)
	b.WriteString("\n\n")
	b.WriteString(analysisTarget(company))
	b.WriteString("\n\n[제공된 데이터]\n")
	b.Write(data)
	b.WriteString("\n\n[분석 지시사항]\n")
	fmt.Fprintf(&b, pt.instruction, company.Name)
	b.WriteString("\n\n")
	b.WriteString(structuredOutputInstruction)
	b.WriteString("\n\n")
	b.WriteString(pt.axes)
	return b.String(), nil
}

// CrossExam 交叉质询阶段的用户提示词。
// 他人分析截断到 1500 字符，自己的分析截断到 2000 字符。
func CrossExam(p *persona.Profile, own string, others []OtherAnalysis, conflicts []model.Conflict) string {
	var relevant []model.Conflict
	for _, c := range conflicts {
		for _, pos := range c.Positions {
			if pos.PersonaID == p.ID {
				relevant = append(relevant, c)
				break
			}
		}
	}

	summaries := make([]string, 0, len(others))
	for _, o := range others {
		summaries = append(summaries, fmt.Sprintf("[%s (%s) - %s]\n%s",
			o.Profile.Name, o.Profile.NameEn, o.Profile.Title, truncate(o.Narrative, 1500)))
	}

	conflictSection := ""
	if len(relevant) > 0 {
		lines := make([]string, 0, len(relevant))
		for _, c := range relevant {
			lines = append(lines, fmt.Sprintf("- 주제: %s\n  설명: %s\n  심각도: %s", c.Topic, c.Description, c.Severity))
		}
		conflictSection = "\n[당신과 관련된 의견 충돌]\n" + strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`당신은 %s입니다. 다른 전문가들의 분석을 검토하고, 의견 충돌 지점에 대해 반론을 제기하세요.

[당신의 원래 분석 요약]
%s

[다른 전문가들의 분석]
%s%s

[지시사항]
1. 다른 전문가들의 분석에서 동의하는 부분과 동의하지 않는 부분을 명확히 구분하세요.
2. 의견 충돌이 있는 주제에 대해 당신의 전문성에 기반한 반론을 제시하세요.
3. 당신의 원래 분석에서 수정이 필요한 부분이 있다면 솔직하게 인정하세요.
4. 새로운 인사이트가 있다면 추가하세요.

응답 마지막에 반드시 다음 JSON을 포함하세요:
`+"```json\n{\n  \"agreementLevel\": \"agree|partially_agree|disagree|strongly_disagree\"\n}\n```",
		p.Name, truncate(own, 2000), strings.Join(summaries, "\n\n---\n\n"), conflictSection)
}

// Verdict 最终意见阶段的用户提示词
func Verdict(p *persona.Profile, company model.CompanyInput, own, rebuttal string) string {
	return fmt.Sprintf(`당신은 %s입니다. 독립 분석과 교차 검토 토론을 거친 후, 최종 의견을 제시하세요.

[당신의 원래 분석]
%s

[교차 검토 토론 결과]
%s

[지시사항]
토론을 통해 얻은 새로운 시각을 반영하여 %s에 대한 최종 의견을 제시하세요.

1. 원래 분석에서 유지하는 입장과 수정한 입장을 명확히 하세요.
2. 토론을 통해 얻은 새로운 인사이트를 반영하세요.
3. 최종 점수를 수정이 필요하면 수정하여 제시하세요.
4. %s에 대한 핵심 메시지를 3문장 이내로 요약하세요.

응답 마지막에 반드시 다음 JSON을 포함하세요:
`+"```json\n"+`{
  "scores": {
    "clinicalValue": 점수,
    "regulatoryPath": 점수,
    "commercialPotential": 점수,
    "competitivePosition": 점수,
    "financialHealth": 점수,
    "ipStrength": 점수
  },
  "keyFindings": ["핵심발견1", "핵심발견2", "핵심발견3"],
  "risks": ["리스크1", "리스크2", "리스크3"],
  "opportunities": ["기회1", "기회2", "기회3"]
}
`+"```",
		p.Name, truncate(own, 2000), truncate(rebuttal, 1500), company.Name, company.Name)
}

// System 各阶段的系统提示词
func System(p *persona.Profile, phase model.Phase) string {
	base := fmt.Sprintf("당신은 %s (%s)입니다. %s", p.Name, p.NameEn, p.Title)
	switch phase {
	case model.PhaseCrossExam:
		return base + ". 다른 전문가들과 교차 검토 토론 중입니다."
	case model.PhaseVerdict:
		return base + ". 최종 투자 의견을 제시합니다."
	default:
		return base
	}
}

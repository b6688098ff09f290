package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

func TestExtractJSON(t *testing.T) {
	content := "분석 결과는 다음과 같습니다.\n\n```json\n{\"scores\": {\"clinicalValue\": 80}}\n```\n"
	assert.Equal(t, `{"scores": {"clinicalValue": 80}}`, ExtractJSON(content))
}

func TestExtractJSONNoNewlineAfterFence(t *testing.T) {
	content := "```json{\"a\": 1}```"
	assert.Equal(t, `{"a": 1}`, ExtractJSON(content))
}

func TestExtractJSONFirstFenceWins(t *testing.T) {
	content := "```json\n{\"a\": 1}\n```\n중간 설명\n```json\n{\"b\": 2}\n```"
	assert.Equal(t, `{"a": 1}`, ExtractJSON(content))
}

func TestExtractJSONNoFence(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSON(`  {"a": 1}  `))
}

func TestEvaluation(t *testing.T) {
	content := "서술 부분입니다.\n```json\n" +
		`{"scores": {"clinicalValue": 72, "ipStrength": 55}, "keyFindings": ["발견1"], "risks": ["리스크1"], "opportunities": []}` +
		"\n```"

	ev := Evaluation(content)
	assert.Equal(t, 72.0, ev.Scores["clinicalValue"])
	assert.Equal(t, 55.0, ev.Scores["ipStrength"])
	assert.Equal(t, []string{"발견1"}, ev.KeyFindings)
	assert.Empty(t, ev.Opportunities)
}

func TestEvaluationMalformed(t *testing.T) {
	for _, content := range []string{
		"JSON이 전혀 없는 서술형 답변",
		"```json\n{broken\n```",
		"",
	} {
		ev := Evaluation(content)
		assert.NotNil(t, ev.Scores)
		assert.Empty(t, ev.Scores)
		assert.NotNil(t, ev.KeyFindings)
	}
}

func TestEvaluationPartialFields(t *testing.T) {
	ev := Evaluation("```json\n{\"scores\": {\"financialHealth\": 60}}\n```")
	assert.Equal(t, 60.0, ev.Scores["financialHealth"])
	assert.NotNil(t, ev.Risks)
	assert.NotNil(t, ev.Opportunities)
}

func TestConflicts(t *testing.T) {
	content := "```json\n" + `[
  {
    "topic": "약가 수준",
    "description": "임상 혜택 대비 약가에 대한 이견",
    "agentPositions": [
      {"agentId": "oncologist", "position": "정당화 가능", "confidence": 0.8},
      {"agentId": "pharmacist", "position": "역치 초과", "confidence": 0.9}
    ],
    "severity": "major"
  }
]` + "\n```"

	got := Conflicts(content)
	assert.Len(t, got, 1)
	assert.Equal(t, "약가 수준", got[0].Topic)
	assert.Equal(t, model.SeverityMajor, got[0].Severity)
	assert.Len(t, got[0].Positions, 2)
	assert.Equal(t, model.PersonaPharmacist, got[0].Positions[1].PersonaID)
	assert.Equal(t, 0.9, got[0].Positions[1].Confidence)
}

func TestConflictsMalformed(t *testing.T) {
	assert.Nil(t, Conflicts("그냥 텍스트"))
	assert.Nil(t, Conflicts("```json\nnot json\n```"))
}

func TestAgreement(t *testing.T) {
	cases := []struct {
		content string
		want    model.AgreementLevel
	}{
		{"```json\n{\"agreementLevel\": \"agree\"}\n```", model.Agree},
		{"```json\n{\"agreementLevel\": \"strongly_disagree\"}\n```", model.StronglyDisagree},
		{"```json\n{\"agreementLevel\": \"whatever\"}\n```", model.PartiallyAgree},
		{"```json\n{}\n```", model.PartiallyAgree},
		{"JSON 없음", model.PartiallyAgree},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Agreement(c.content), c.content)
	}
}

func TestReport(t *testing.T) {
	content := "```json\n" + `{
  "executiveSummary": "종합 요약",
  "overallScore": 75,
  "dimensionScores": {"clinicalValue": 70, "regulatoryPath": 65, "commercialPotential": 80, "competitivePosition": 75, "financialHealth": 70, "ipStrength": 60},
  "consensusPoints": ["임상 데이터는 견고함"],
  "openQuestions": ["급여 시점"]
}` + "\n```"

	rpt := Report(content)
	assert.Equal(t, "종합 요약", rpt.ExecutiveSummary)
	assert.Equal(t, 75, rpt.OverallScore)
	assert.Equal(t, 70, rpt.DimensionScores.ClinicalValue)
	assert.Equal(t, []string{"임상 데이터는 견고함"}, rpt.ConsensusPoints)
}

func TestReportFallback(t *testing.T) {
	raw := "구조화에 실패한 장문의 서술형 리포트"
	rpt := Report(raw)
	assert.Equal(t, raw, rpt.ExecutiveSummary)
	assert.Equal(t, 0, rpt.OverallScore)
	assert.NotNil(t, rpt.AgentVerdicts)
	assert.Empty(t, rpt.AgentVerdicts)
}

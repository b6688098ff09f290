package conflict

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

type stubGenerator struct {
	content string
	err     error
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, _, user string) (*llm.Completion, error) {
	s.prompts = append(s.prompts, user)
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Completion{Content: s.content}, nil
}

var testAnalyses = []Analysis{
	{PersonaID: model.PersonaOncologist, Narrative: "임상 데이터가 견고하다"},
	{PersonaID: model.PersonaPharmacist, Narrative: "약가가 지나치게 높다"},
}

func TestDetect(t *testing.T) {
	stub := &stubGenerator{content: "```json\n" + `[
  {
    "topic": "약가",
    "description": "비용 대비 가치에 대한 이견",
    "agentPositions": [
      {"agentId": "oncologist", "position": "가치 있음", "confidence": 0.7},
      {"agentId": "pharmacist", "position": "과도함", "confidence": 0.9}
    ],
    "severity": "moderate"
  }
]` + "\n```"}

	got := NewDetector(stub).Detect(context.Background(), testAnalyses)

	assert.Len(t, got, 1)
	assert.Equal(t, "약가", got[0].Topic)
	assert.Equal(t, model.SeverityModerate, got[0].Severity)

	// 提示词应包含全部分析文本
	assert.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "oncologist의 분석")
	assert.Contains(t, stub.prompts[0], "약가가 지나치게 높다")
}

func TestDetectTruncatesLongNarratives(t *testing.T) {
	long := strings.Repeat("가", 5000)
	stub := &stubGenerator{content: "[]"}

	NewDetector(stub).Detect(context.Background(), []Analysis{
		{PersonaID: model.PersonaOncologist, Narrative: long},
		{PersonaID: model.PersonaPharmacist, Narrative: "약가가 지나치게 높다"},
	})

	assert.Len(t, stub.prompts, 1)
	// 每份分析最多带入 2000 字
	assert.NotContains(t, stub.prompts[0], strings.Repeat("가", 2001))
	assert.Contains(t, stub.prompts[0], strings.Repeat("가", 2000)+"...")
}

func TestDetectLLMError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}
	assert.Nil(t, NewDetector(stub).Detect(context.Background(), testAnalyses))
}

func TestDetectUnparseable(t *testing.T) {
	stub := &stubGenerator{content: "서술형 답변만 있고 JSON이 없음"}
	assert.Nil(t, NewDetector(stub).Detect(context.Background(), testAnalyses))
}

func TestDetectTooFewAnalyses(t *testing.T) {
	stub := &stubGenerator{content: "[]"}
	assert.Nil(t, NewDetector(stub).Detect(context.Background(), testAnalyses[:1]))
	assert.Empty(t, stub.prompts, "单份分析不应触发模型调用")
}

// Package conflict 在独立分析之间检测意见冲突。
package conflict

import (
	"context"
	"fmt"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/parse"
)

const systemPrompt = "당신은 토론 분석 전문가입니다. 5명의 전문가 분석 결과에서 의견이 충돌하는 지점을 감지해야 합니다."

// Analysis 一位专家的独立分析文本
type Analysis struct {
	PersonaID model.PersonaID
	Narrative string
}

// Detector 冲突检测器
type Detector struct {
	gen llm.Generator
}

func NewDetector(gen llm.Generator) *Detector {
	return &Detector{gen: gen}
}

// Detect 用一次模型调用找出分析之间的冲突。
// 检测失败不应中断辩论，调用失败或解析失败都返回空列表。
func (d *Detector) Detect(ctx context.Context, analyses []Analysis) []model.Conflict {
	if len(analyses) < 2 {
		return nil
	}

	// 只取每份分析的前 2000 字，控制单次调用的 token 开销
	texts := make([]string, 0, len(analyses))
	for _, a := range analyses {
		texts = append(texts, fmt.Sprintf("[%s의 분석]\n%s", a.PersonaID, truncate(a.Narrative, 2000)))
	}

	user := fmt.Sprintf(`다음 %d명의 전문가 분석에서 의견이 충돌하거나 크게 다른 부분을 찾아주세요.

%s

반드시 다음 JSON 배열 형태로만 응답하세요:
`+"```json\n"+`[
  {
    "topic": "충돌 주제",
    "description": "충돌 설명",
    "agentPositions": [
      { "agentId": "에이전트ID", "position": "입장", "confidence": 0.8 }
    ],
    "severity": "minor|moderate|major"
  }
]
`+"```", len(analyses), strings.Join(texts, "\n\n---\n\n"))

	resp, err := d.gen.Generate(ctx, systemPrompt, user)
	if err != nil {
		logger.Log.Errorf("冲突检测调用失败: %v", err)
		return nil
	}

	return parse.Conflicts(resp.Content)
}

// truncate 按 rune 截断，避免把多字节字符截成乱码
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

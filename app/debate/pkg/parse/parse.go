// Package parse 从模型回复中提取尾部的结构化 JSON。
// 模型偶尔不守约定，所有入口都必须有兜底值，绝不让解析失败中断辩论。
package parse

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

var fenceRe = regexp.MustCompile("```json\n?([\\s\\S]*?)```")

// ExtractJSON 提取回复中第一个 ```json 围栏内的内容。
// 没有围栏时返回整段文本，交给调用方尝试直接解析。
func ExtractJSON(content string) string {
	if m := fenceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}

// Evaluation 解析独立分析/最终意见尾部的评估块。
// 解析失败返回空评估，不返回错误。
func Evaluation(content string) model.Evaluation {
	var ev model.Evaluation
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &ev); err != nil {
		return model.EmptyEvaluation()
	}
	if ev.Scores == nil {
		ev.Scores = map[string]float64{}
	}
	if ev.KeyFindings == nil {
		ev.KeyFindings = []string{}
	}
	if ev.Risks == nil {
		ev.Risks = []string{}
	}
	if ev.Opportunities == nil {
		ev.Opportunities = []string{}
	}
	return ev
}

// Conflicts 解析冲突检测回复。解析失败返回空列表。
func Conflicts(content string) []model.Conflict {
	var out []model.Conflict
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &out); err != nil {
		return nil
	}
	return out
}

// Agreement 解析交叉质询回复中的立场标签，缺省为 partially_agree
func Agreement(content string) model.AgreementLevel {
	var payload struct {
		AgreementLevel model.AgreementLevel `json:"agreementLevel"`
	}
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &payload); err != nil {
		return model.PartiallyAgree
	}
	switch payload.AgreementLevel {
	case model.Agree, model.PartiallyAgree, model.Disagree, model.StronglyDisagree:
		return payload.AgreementLevel
	default:
		return model.PartiallyAgree
	}
}

// Report 解析综合报告。解析失败时把原始文本塞进执行摘要返回骨架报告。
func Report(content string) *model.FinalReport {
	var rpt model.FinalReport
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &rpt); err != nil {
		return model.EmptyReport(content)
	}
	return &rpt
}

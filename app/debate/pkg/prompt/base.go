package prompt

import (
	"fmt"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

// buildBaseContext 拼接专家人设的基础上下文
func buildBaseContext(name, background string, personality, dontDo []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "당신은 %s입니다.\n%s\n\n", name, background)
	b.WriteString("[성격과 스타일]\n")
	for _, p := range personality {
		b.WriteString("- " + p + "\n")
	}
	b.WriteString("\n[절대 하지 않는 것]\n")
	for _, d := range dontDo {
		b.WriteString("- " + d + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// analysisTarget 分析对象段落
func analysisTarget(company model.CompanyInput) string {
	ticker := company.Ticker
	if ticker == "" {
		ticker = "N/A"
	}
	return fmt.Sprintf("[분석 대상]\n회사: %s (%s)\n분야: %s", company.Name, ticker, company.Sector)
}

// structuredOutputInstruction 要求模型在回答末尾附带结构化 JSON
const structuredOutputInstruction = "반드시 다음 JSON 구조를 응답 마지막에 포함하세요:\n\n" +
	"```json\n" +
	"{\n" +
	"  \"scores\": {\n" +
	"    \"항목1\": 점수,\n" +
	"    \"항목2\": 점수\n" +
	"  },\n" +
	"  \"keyFindings\": [\"발견1\", \"발견2\", \"발견3\"],\n" +
	"  \"risks\": [\"리스크1\", \"리스크2\", \"리스크3\"],\n" +
	"  \"opportunities\": [\"기회1\", \"기회2\", \"기회3\"]\n" +
	"}\n" +
	"```"

// truncate 按 rune 截断，避免把多字节字符截成乱码
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/persona"
)

var testCompany = model.CompanyInput{
	Name:   "알테오젠",
	Ticker: "196170",
	Sector: "바이오시밀러",
}

func TestIndependent(t *testing.T) {
	reg := persona.NewRegistry()
	enriched := &model.EnrichedData{
		News: []model.NewsArticle{{Title: "FDA 승인 임박", Source: "조선비즈"}},
	}

	for _, p := range reg.All() {
		got, err := Independent(p, testCompany, enriched)
		require.NoError(t, err, p.ID)

		assert.Contains(t, got, "당신은 "+p.Name)
		assert.Contains(t, got, "회사: 알테오젠 (196170)")
		assert.Contains(t, got, "[제공된 데이터]")
		assert.Contains(t, got, "FDA 승인 임박")
		assert.Contains(t, got, "```json")
		assert.Contains(t, got, "keyFindings")
		assert.NotContains(t, got, "%!s")
	}
}

func TestIndependentDeterministic(t *testing.T) {
	reg := persona.NewRegistry()
	p := reg.MustGet(model.PersonaAnalyst)
	enriched := &model.EnrichedData{}

	a, err := Independent(p, testCompany, enriched)
	require.NoError(t, err)
	b, err := Independent(p, testCompany, enriched)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestIndependentNoTicker(t *testing.T) {
	reg := persona.NewRegistry()
	got, err := Independent(reg.MustGet(model.PersonaOncologist),
		model.CompanyInput{Name: "Acme Bio", Sector: "항암제"}, &model.EnrichedData{})
	require.NoError(t, err)
	assert.Contains(t, got, "회사: Acme Bio (N/A)")
}

func TestCrossExam(t *testing.T) {
	reg := persona.NewRegistry()
	me := reg.MustGet(model.PersonaOncologist)
	other := reg.MustGet(model.PersonaPharmacist)

	conflicts := []model.Conflict{
		{
			Topic:       "약가 전략",
			Description: "임상 혜택 대비 약가 수준에 대한 이견",
			Severity:    model.SeverityMajor,
			Positions: []model.ConflictPosition{
				{PersonaID: model.PersonaOncologist, Position: "혜택이 가격을 정당화함"},
				{PersonaID: model.PersonaPharmacist, Position: "ICER 역치 초과"},
			},
		},
		{
			Topic:       "시장 규모",
			Description: "두 분석가만 관련된 충돌",
			Severity:    model.SeverityMinor,
			Positions: []model.ConflictPosition{
				{PersonaID: model.PersonaAnalyst, Position: "TAM 과대평가"},
				{PersonaID: model.PersonaImmunologist, Position: "플랫폼 확장성 반영 필요"},
			},
		},
	}

	got := CrossExam(me, "나의 분석 내용", []OtherAnalysis{{Profile: other, Narrative: "타인의 분석 내용"}}, conflicts)

	assert.Contains(t, got, "[당신과 관련된 의견 충돌]")
	assert.Contains(t, got, "약가 전략")
	assert.NotContains(t, got, "시장 규모", "与本人无关的冲突不应出现")
	assert.Contains(t, got, "박준호")
	assert.Contains(t, got, "agreementLevel")
}

func TestCrossExamNoConflicts(t *testing.T) {
	reg := persona.NewRegistry()
	got := CrossExam(reg.MustGet(model.PersonaRegulatory), "own", nil, nil)
	assert.NotContains(t, got, "[당신과 관련된 의견 충돌]")
	assert.Contains(t, got, "[지시사항]")
}

func TestCrossExamTruncates(t *testing.T) {
	reg := persona.NewRegistry()
	long := strings.Repeat("가", 5000)
	got := CrossExam(reg.MustGet(model.PersonaOncologist), long,
		[]OtherAnalysis{{Profile: reg.MustGet(model.PersonaAnalyst), Narrative: long}}, nil)

	// 截断在 rune 边界上，提示词中不应出现完整的 5000 字原文
	assert.Less(t, len(got), len(long)*2)
	assert.Contains(t, got, strings.Repeat("가", 2000)+"...")
}

func TestVerdict(t *testing.T) {
	reg := persona.NewRegistry()
	got := Verdict(reg.MustGet(model.PersonaImmunologist), testCompany, "원래 분석", "토론 내용")

	assert.Contains(t, got, "최은지")
	assert.Contains(t, got, "알테오젠에 대한 최종 의견")
	assert.Contains(t, got, "clinicalValue")
	assert.Contains(t, got, "ipStrength")
}

func TestSystem(t *testing.T) {
	reg := persona.NewRegistry()
	p := reg.MustGet(model.PersonaAnalyst)

	indep := System(p, model.PhaseIndependent)
	assert.Contains(t, indep, p.Name)
	assert.Contains(t, indep, p.Title)

	cross := System(p, model.PhaseCrossExam)
	assert.Contains(t, cross, "교차 검토 토론 중")

	verdict := System(p, model.PhaseVerdict)
	assert.Contains(t, verdict, "최종 투자 의견")
}

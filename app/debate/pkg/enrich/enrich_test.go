package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search"
)

type stubSearcher struct {
	results []search.Result
	err     error
}

func (s *stubSearcher) Search(context.Context, *search.Request) (*search.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &search.Response{Results: s.results}, nil
}

func TestCategorize(t *testing.T) {
	cases := map[string]string{
		"Company wins FDA approval":           "regulatory",
		"Phase 3 trial readout expected":      "clinical",
		"Startup raises Series B funding":     "business",
		"New software platform for hospitals": "digital_health",
		"Quarterly newsletter":                "general",
	}
	for title, want := range cases {
		assert.Equal(t, want, categorize(title), title)
	}
}

func TestDedupeAndRank(t *testing.T) {
	articles := []model.NewsArticle{
		{Title: "Alpha news", PublishedAt: "2026-08-01"},
		{Title: "alpha NEWS", PublishedAt: "2026-08-02"}, // 标题去重不区分大小写
		{Title: "Beta news", PublishedAt: "2026-08-03"},
	}

	got := dedupeAndRank(articles)
	require.Len(t, got, 2)
	assert.Equal(t, "Beta news", got[0].Title, "按发布时间倒序")
	assert.Equal(t, "Alpha news", got[1].Title)
}

func TestSourceFromURL(t *testing.T) {
	assert.Equal(t, "fiercebiotech.com", sourceFromURL("https://www.fiercebiotech.com/biotech/some-story"))
	assert.Equal(t, "news.naver.com", sourceFromURL("http://news.naver.com/article/1"))
}

func TestNewsClientFetch(t *testing.T) {
	stub := &stubSearcher{results: []search.Result{
		{Title: "Acme wins FDA approval", URL: "https://example.com/a", Content: "요약", PublishedDate: "2026-08-10"},
		{Title: "Acme wins FDA approval", URL: "https://example.com/dup", Content: "중복", PublishedDate: "2026-08-09"},
	}}

	got, err := NewNewsClient(stub).Fetch(context.Background(), model.CompanyInput{Name: "Acme", Sector: "항암제"})
	require.NoError(t, err)
	// 三路查询返回同一结果，去重后只剩一条
	require.Len(t, got, 1)
	assert.Equal(t, "regulatory", got[0].Category)
	assert.Equal(t, "example.com", got[0].Source)
}

func TestClinicalTrialsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Acme", r.URL.Query().Get("query.spons"))
		w.Write([]byte(`{"studies": [{"protocolSection": {
			"identificationModule": {"nctId": "NCT01234567", "briefTitle": "A Study of X"},
			"statusModule": {"overallStatus": "RECRUITING", "startDateStruct": {"date": "2025-01"}},
			"designModule": {"phases": ["PHASE2", "PHASE3"], "enrollmentInfo": {"count": 120}},
			"conditionsModule": {"conditions": ["NSCLC"]},
			"armsInterventionsModule": {"interventions": [{"name": "Drug X"}, {"name": "Placebo"}]}
		}}]}`))
	}))
	defer srv.Close()

	c := NewClinicalTrialsClient(srv.Client())
	c.BaseURL = srv.URL

	got, err := c.Fetch(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NCT01234567", got[0].NCTID)
	assert.Equal(t, "PHASE2, PHASE3", got[0].Phase)
	assert.Equal(t, "Drug X, Placebo", got[0].Intervention)
	assert.Equal(t, 120, got[0].Enrollment)
}

func TestOpenFDAFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/drug/drugsfda.json":
			w.Write([]byte(`{"results": [{"application_number": "BLA123", "sponsor_name": "Acme",
				"submissions": [{"submission_status": "AP", "submission_status_date": "2025-06-01"}],
				"products": [{"brand_name": "Acmezumab"}]}]}`))
		case "/device/510k.json":
			// openFDA 无结果时返回 404
			w.WriteHeader(http.StatusNotFound)
		case "/drug/enforcement.json":
			w.Write([]byte(`{"results": [{"recall_number": "D-001", "recalling_firm": "Acme",
				"classification": "Class II", "status": "Ongoing", "recall_initiation_date": "2026-01-15",
				"product_description": "Lot 42"}]}`))
		}
	}))
	defer srv.Close()

	c := NewOpenFDAClient(srv.Client())
	c.BaseURL = srv.URL

	got, err := c.Fetch(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// 按日期倒序
	assert.Equal(t, "recall", got[0].Type)
	assert.Equal(t, "Class II - Ongoing", got[0].Decision)
	assert.Equal(t, "drug_approval", got[1].Type)
	assert.Equal(t, "Acmezumab", got[1].Product)
}

func TestPubMedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/esearch.fcgi":
			w.Write([]byte(`{"esearchresult": {"idlist": ["11111", "22222"]}}`))
		case "/esummary.fcgi":
			w.Write([]byte(`{"result": {
				"11111": {"title": "Paper One", "source": "Nature", "pubdate": "2026 Aug", "authors": [{"name": "Kim S"}]},
				"22222": {"title": "Paper Two", "source": "Cell", "pubdate": "2026 Jul", "authors": []}
			}}`))
		}
	}))
	defer srv.Close()

	c := NewPubMedClient(srv.Client(), "")
	c.BaseURL = srv.URL

	got, err := c.Fetch(context.Background(), "Acme 항암제")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "11111", got[0].PMID)
	assert.Equal(t, []string{"Kim S"}, got[0].Authors)
	assert.Equal(t, "Cell", got[1].Journal)
}

func TestEnricherRun(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	e := &Enricher{
		trials: NewClinicalTrialsClient(failing.Client()),
		fda:    NewOpenFDAClient(failing.Client()),
		pubmed: NewPubMedClient(failing.Client(), ""),
		news: NewNewsClient(&stubSearcher{results: []search.Result{
			{Title: "Acme FDA news", URL: "https://example.com/x", Content: "요약", PublishedDate: "2026-08-20"},
		}}),
	}
	e.trials.BaseURL = failing.URL
	e.fda.BaseURL = failing.URL
	e.pubmed.BaseURL = failing.URL

	var lastProgress int
	var notifications int
	data, steps := e.Run(context.Background(), model.CompanyInput{Name: "Acme", Sector: "항암제"},
		func(steps []model.EnrichmentStep, progress int) {
			notifications++
			assert.GreaterOrEqual(t, progress, lastProgress, "进度只增不减")
			assert.LessOrEqual(t, progress, 15)
			lastProgress = progress
		})

	// 数据源失败不影响流程，全部步骤仍然完成
	require.Len(t, steps, 6)
	for _, s := range steps {
		assert.Equal(t, "completed", s.Status, s.ID)
		assert.NotEmpty(t, s.Result, s.ID)
	}
	assert.Equal(t, 15, lastProgress)
	assert.Equal(t, 12, notifications, "每步两次通知")

	// 新闻源正常工作
	require.Len(t, data.News, 1)
	assert.Empty(t, data.ClinicalTrials)
	assert.Empty(t, data.FDAEvents)
	assert.Empty(t, data.RecentPapers)
}

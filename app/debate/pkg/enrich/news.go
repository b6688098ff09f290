package enrich

import (
	"context"
	"sort"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/search"
)

// NewsClient 新闻收集器，底层用可插拔的 search.Searcher
type NewsClient struct {
	searcher search.Searcher
}

func NewNewsClient(searcher search.Searcher) *NewsClient {
	return &NewsClient{searcher: searcher}
}

// Fetch 围绕公司发起多路新闻检索，去重排序后最多返回 15 条
func (c *NewsClient) Fetch(ctx context.Context, company model.CompanyInput) ([]model.NewsArticle, error) {
	queries := []string{
		company.Name + " biotech",
		company.Name + " FDA",
		company.Name + " clinical trial",
	}

	var all []model.NewsArticle
	for _, q := range queries {
		resp, err := c.searcher.Search(ctx, &search.Request{
			Query:      q,
			Topic:      "news",
			MaxResults: 10,
		})
		if err != nil {
			logger.Log.Warnf("新闻检索失败 [%s]: %v", q, err)
			continue
		}
		for _, r := range resp.Results {
			all = append(all, model.NewsArticle{
				Title:       r.Title,
				Source:      sourceFromURL(r.URL),
				URL:         r.URL,
				PublishedAt: r.PublishedDate,
				Snippet:     r.Content,
				Category:    categorize(r.Title),
			})
		}
	}

	articles := dedupeAndRank(all)

	// 缺摘要的头部文章用 readability 抓正文补齐
	for i := range articles {
		if i >= 3 || articles[i].Snippet != "" {
			continue
		}
		body, err := fetchArticleBody(articles[i].URL)
		if err != nil {
			logger.Log.Debugf("正文提取失败 [%s]: %v", articles[i].URL, err)
			continue
		}
		articles[i].Snippet = body
	}

	return articles, nil
}

// fetchArticleBody 抓取 URL 并提取核心文本
func fetchArticleBody(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(article.TextContent)
	if rs := []rune(text); len(rs) > 500 {
		text = string(rs[:500])
	}
	return text, nil
}

func sourceFromURL(u string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimPrefix(trimmed, "www.")
}

// categorize 按标题关键词给新闻归类
func categorize(title string) string {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, "fda", "approval", "regulatory", "ema"):
		return "regulatory"
	case containsAny(lower, "trial", "phase", "clinical", "patient"):
		return "clinical"
	case containsAny(lower, "digital", "ai ", "software", "app"):
		return "digital_health"
	case containsAny(lower, "acquisition", "ipo", "funding", "deal", "stock"):
		return "business"
	default:
		return "general"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupeAndRank 按标题前缀去重，按发布时间倒序，截断到 15 条
func dedupeAndRank(articles []model.NewsArticle) []model.NewsArticle {
	seen := make(map[string]bool)
	out := make([]model.NewsArticle, 0, len(articles))
	for _, a := range articles {
		key := strings.ToLower(a.Title)
		if rs := []rune(key); len(rs) > 50 {
			key = string(rs[:50])
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt > out[j].PublishedAt
	})
	if len(out) > 15 {
		out = out[:15]
	}
	return out
}

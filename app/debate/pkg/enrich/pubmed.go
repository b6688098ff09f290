package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

const eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMedClient NCBI E-utilities 客户端，esearch 拿 ID 再 esummary 取摘要信息
type PubMedClient struct {
	client  *http.Client
	apiKey  string
	BaseURL string
}

func NewPubMedClient(client *http.Client, apiKey string) *PubMedClient {
	return &PubMedClient{client: client, apiKey: apiKey, BaseURL: eutilsBase}
}

// Fetch 按查询词检索最近论文，最多 10 篇
func (c *PubMedClient) Fetch(ctx context.Context, query string) ([]model.PaperSummary, error) {
	keyParam := ""
	if c.apiKey != "" {
		keyParam = "&api_key=" + url.QueryEscape(c.apiKey)
	}

	var searchPayload struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&term=%s&retmax=10&retmode=json&sort=date%s",
		c.BaseURL, url.QueryEscape(query), keyParam)
	if err := c.getJSON(ctx, searchURL, &searchPayload); err != nil {
		return nil, err
	}

	ids := searchPayload.ESearchResult.IDList
	if len(ids) == 0 {
		return nil, nil
	}

	var summaryPayload struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	summaryURL := fmt.Sprintf("%s/esummary.fcgi?db=pubmed&id=%s&retmode=json%s",
		c.BaseURL, strings.Join(ids, ","), keyParam)
	if err := c.getJSON(ctx, summaryURL, &summaryPayload); err != nil {
		return nil, err
	}

	out := make([]model.PaperSummary, 0, len(ids))
	for _, id := range ids {
		raw, ok := summaryPayload.Result[id]
		if !ok {
			continue
		}
		var article struct {
			Title   string `json:"title"`
			Source  string `json:"source"`
			PubDate string `json:"pubdate"`
			Authors []struct {
				Name string `json:"name"`
			} `json:"authors"`
		}
		if err := json.Unmarshal(raw, &article); err != nil {
			continue
		}
		authors := make([]string, 0, len(article.Authors))
		for _, a := range article.Authors {
			authors = append(authors, a.Name)
		}
		out = append(out, model.PaperSummary{
			PMID:        id,
			Title:       article.Title,
			Authors:     authors,
			Journal:     article.Source,
			PublishDate: article.PubDate,
		})
	}
	return out, nil
}

func (c *PubMedClient) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("pubmed status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

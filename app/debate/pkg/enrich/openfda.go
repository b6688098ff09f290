package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/logger"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

const openFDABase = "https://api.fda.gov"

// OpenFDAClient openFDA API 客户端，聚合药品审批、器械 510(k) 和召回记录
type OpenFDAClient struct {
	client  *http.Client
	BaseURL string
}

func NewOpenFDAClient(client *http.Client) *OpenFDAClient {
	return &OpenFDAClient{client: client, BaseURL: openFDABase}
}

// Fetch 拉取三类 FDA 事件，按日期倒序合并，最多 20 条。
// 单个端点失败只丢弃该端点的结果。
func (c *OpenFDAClient) Fetch(ctx context.Context, companyName string) ([]model.FDAEvent, error) {
	var events []model.FDAEvent

	approvals, err := c.fetchDrugApprovals(ctx, companyName)
	if err != nil {
		logger.Log.Warnf("openFDA 药品审批查询失败 [%s]: %v", companyName, err)
	}
	events = append(events, approvals...)

	clearances, err := c.fetchDevice510k(ctx, companyName)
	if err != nil {
		logger.Log.Warnf("openFDA 510(k) 查询失败 [%s]: %v", companyName, err)
	}
	events = append(events, clearances...)

	recalls, err := c.fetchRecalls(ctx, companyName)
	if err != nil {
		logger.Log.Warnf("openFDA 召回查询失败 [%s]: %v", companyName, err)
	}
	events = append(events, recalls...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	if len(events) > 20 {
		events = events[:20]
	}
	return events, nil
}

func (c *OpenFDAClient) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// openFDA 对无记录的查询返回 404
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("openfda status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *OpenFDAClient) fetchDrugApprovals(ctx context.Context, companyName string) ([]model.FDAEvent, error) {
	var payload struct {
		Results []struct {
			ApplicationNumber string `json:"application_number"`
			SponsorName       string `json:"sponsor_name"`
			Submissions       []struct {
				Status     string `json:"submission_status"`
				StatusDate string `json:"submission_status_date"`
			} `json:"submissions"`
			Products []struct {
				BrandName string `json:"brand_name"`
			} `json:"products"`
		} `json:"results"`
	}

	u := fmt.Sprintf(`%s/drug/drugsfda.json?search=sponsor_name:"%s"&limit=10`, c.BaseURL, url.QueryEscape(companyName))
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	out := make([]model.FDAEvent, 0, len(payload.Results))
	for i, r := range payload.Results {
		ev := model.FDAEvent{
			ID:        r.ApplicationNumber,
			Type:      "drug_approval",
			Applicant: r.SponsorName,
		}
		if ev.ID == "" {
			ev.ID = fmt.Sprintf("drug-%d", i)
		}
		if ev.Applicant == "" {
			ev.Applicant = companyName
		}
		if len(r.Submissions) > 0 {
			ev.Date = r.Submissions[0].StatusDate
			ev.Decision = r.Submissions[0].Status
		}
		if len(r.Products) > 0 {
			ev.Product = r.Products[0].BrandName
		}
		out = append(out, ev)
	}
	return out, nil
}

func (c *OpenFDAClient) fetchDevice510k(ctx context.Context, companyName string) ([]model.FDAEvent, error) {
	var payload struct {
		Results []struct {
			KNumber      string `json:"k_number"`
			DeviceName   string `json:"device_name"`
			Applicant    string `json:"applicant"`
			DecisionCode string `json:"decision_code"`
			DecisionDate string `json:"decision_date"`
		} `json:"results"`
	}

	u := fmt.Sprintf(`%s/device/510k.json?search=applicant:"%s"&limit=10`, c.BaseURL, url.QueryEscape(companyName))
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	out := make([]model.FDAEvent, 0, len(payload.Results))
	for i, r := range payload.Results {
		decision := r.DecisionCode
		if decision == "SESE" {
			decision = "Substantially Equivalent"
		}
		ev := model.FDAEvent{
			ID:        r.KNumber,
			Type:      "device_510k",
			Date:      r.DecisionDate,
			Product:   r.DeviceName,
			Applicant: r.Applicant,
			Decision:  decision,
		}
		if ev.ID == "" {
			ev.ID = fmt.Sprintf("510k-%d", i)
		}
		if ev.Applicant == "" {
			ev.Applicant = companyName
		}
		out = append(out, ev)
	}
	return out, nil
}

func (c *OpenFDAClient) fetchRecalls(ctx context.Context, companyName string) ([]model.FDAEvent, error) {
	var payload struct {
		Results []struct {
			RecallNumber       string `json:"recall_number"`
			ProductDescription string `json:"product_description"`
			RecallingFirm      string `json:"recalling_firm"`
			Classification     string `json:"classification"`
			Status             string `json:"status"`
			InitiationDate     string `json:"recall_initiation_date"`
		} `json:"results"`
	}

	u := fmt.Sprintf(`%s/drug/enforcement.json?search=recalling_firm:"%s"&limit=5`, c.BaseURL, url.QueryEscape(companyName))
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	out := make([]model.FDAEvent, 0, len(payload.Results))
	for i, r := range payload.Results {
		product := r.ProductDescription
		if rs := []rune(product); len(rs) > 100 {
			product = string(rs[:100])
		}
		ev := model.FDAEvent{
			ID:        r.RecallNumber,
			Type:      "recall",
			Date:      r.InitiationDate,
			Product:   product,
			Applicant: r.RecallingFirm,
			Decision:  strings.TrimSpace(r.Classification + " - " + r.Status),
		}
		if ev.ID == "" {
			ev.ID = fmt.Sprintf("recall-%d", i)
		}
		if ev.Applicant == "" {
			ev.Applicant = companyName
		}
		out = append(out, ev)
	}
	return out, nil
}

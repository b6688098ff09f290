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

const ctgovBase = "https://clinicaltrials.gov/api/v2"

// ClinicalTrialsClient ClinicalTrials.gov v2 API 客户端
type ClinicalTrialsClient struct {
	client  *http.Client
	BaseURL string
}

func NewClinicalTrialsClient(client *http.Client) *ClinicalTrialsClient {
	return &ClinicalTrialsClient{client: client, BaseURL: ctgovBase}
}

type ctgovStudies struct {
	Studies []struct {
		ProtocolSection struct {
			IdentificationModule struct {
				NCTID      string `json:"nctId"`
				BriefTitle string `json:"briefTitle"`
			} `json:"identificationModule"`
			StatusModule struct {
				OverallStatus   string `json:"overallStatus"`
				StartDateStruct struct {
					Date string `json:"date"`
				} `json:"startDateStruct"`
				CompletionDateStruct struct {
					Date string `json:"date"`
				} `json:"completionDateStruct"`
			} `json:"statusModule"`
			DesignModule struct {
				Phases         []string `json:"phases"`
				EnrollmentInfo struct {
					Count int `json:"count"`
				} `json:"enrollmentInfo"`
			} `json:"designModule"`
			ConditionsModule struct {
				Conditions []string `json:"conditions"`
			} `json:"conditionsModule"`
			ArmsInterventionsModule struct {
				Interventions []struct {
					Name string `json:"name"`
				} `json:"interventions"`
			} `json:"armsInterventionsModule"`
		} `json:"protocolSection"`
	} `json:"studies"`
}

// Fetch 按申办方名称查询临床试验，最多返回 10 条
func (c *ClinicalTrialsClient) Fetch(ctx context.Context, companyName string) ([]model.ClinicalTrialSummary, error) {
	u := fmt.Sprintf("%s/studies?query.spons=%s&pageSize=20&format=json", c.BaseURL, url.QueryEscape(companyName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clinicaltrials.gov status %d", res.StatusCode)
	}

	var payload ctgovStudies
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	out := make([]model.ClinicalTrialSummary, 0, len(payload.Studies))
	for _, s := range payload.Studies {
		ps := s.ProtocolSection
		phase := strings.Join(ps.DesignModule.Phases, ", ")
		if phase == "" {
			phase = "N/A"
		}
		names := make([]string, 0, len(ps.ArmsInterventionsModule.Interventions))
		for _, iv := range ps.ArmsInterventionsModule.Interventions {
			names = append(names, iv.Name)
		}
		out = append(out, model.ClinicalTrialSummary{
			NCTID:          ps.IdentificationModule.NCTID,
			Title:          ps.IdentificationModule.BriefTitle,
			Phase:          phase,
			Status:         ps.StatusModule.OverallStatus,
			Condition:      strings.Join(ps.ConditionsModule.Conditions, ", "),
			Intervention:   strings.Join(names, ", "),
			StartDate:      ps.StatusModule.StartDateStruct.Date,
			CompletionDate: ps.StatusModule.CompletionDateStruct.Date,
			Enrollment:     ps.DesignModule.EnrollmentInfo.Count,
		})
		if len(out) == 10 {
			break
		}
	}
	return out, nil
}

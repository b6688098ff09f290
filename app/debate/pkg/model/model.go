package model

import "time"

// PersonaID 固定的五位专家标识
type PersonaID string

const (
	PersonaOncologist   PersonaID = "oncologist"
	PersonaPharmacist   PersonaID = "pharmacist"
	PersonaAnalyst      PersonaID = "analyst"
	PersonaRegulatory   PersonaID = "regulatory"
	PersonaImmunologist PersonaID = "immunologist"
)

// PersonaIDs 辩论的固定出场顺序
var PersonaIDs = []PersonaID{
	PersonaOncologist,
	PersonaPharmacist,
	PersonaAnalyst,
	PersonaRegulatory,
	PersonaImmunologist,
}

// Sectors 可选的行业板块（固定枚举，韩文为产品展示语言）
var Sectors = []string{
	"바이오시밀러",
	"mRNA 치료제",
	"항암제",
	"면역치료제",
	"유전자치료",
	"의료기기",
	"디지털헬스",
	"기타",
}

// CompanyInput 待分析的公司信息，会话创建后不可变
type CompanyInput struct {
	Name        string `json:"name"`
	Ticker      string `json:"ticker,omitempty"`
	Sector      string `json:"sector"`
	Description string `json:"description,omitempty"`
}

// ClinicalTrialSummary 一条临床试验摘要
type ClinicalTrialSummary struct {
	NCTID          string `json:"nctId"`
	Title          string `json:"title"`
	Phase          string `json:"phase"`
	Status         string `json:"status"`
	Condition      string `json:"condition"`
	Intervention   string `json:"intervention"`
	StartDate      string `json:"startDate,omitempty"`
	CompletionDate string `json:"completionDate,omitempty"`
	Enrollment     int    `json:"enrollment,omitempty"`
}

// PaperSummary 一条论文摘要
type PaperSummary struct {
	PMID        string   `json:"pmid"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Journal     string   `json:"journal,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
}

// FinancialSummary 财务概况
type FinancialSummary struct {
	Revenue      float64 `json:"revenue,omitempty"`
	MarketCap    float64 `json:"marketCap,omitempty"`
	CashPosition float64 `json:"cashPosition,omitempty"`
	BurnRate     float64 `json:"burnRate,omitempty"`
	Runway       string  `json:"runway,omitempty"`
}

// CompetitorInfo 竞争对手信息
type CompetitorInfo struct {
	Name            string `json:"name"`
	Pipeline        string `json:"pipeline,omitempty"`
	Stage           string `json:"stage,omitempty"`
	Differentiation string `json:"differentiation,omitempty"`
}

// RegulatoryEvent 监管历史事件
type RegulatoryEvent struct {
	Date    string `json:"date"`
	Agency  string `json:"agency"`
	Event   string `json:"event"`
	Outcome string `json:"outcome,omitempty"`
}

// NewsArticle 新闻条目
type NewsArticle struct {
	Title       string `json:"title"`
	Source      string `json:"source,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	Category    string `json:"category,omitempty"`
}

// FDAEvent openFDA 的审批/召回事件
type FDAEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // drug_approval / device_510k / recall
	Date      string `json:"date"`
	Product   string `json:"product,omitempty"`
	Applicant string `json:"applicant,omitempty"`
	Decision  string `json:"decision,omitempty"`
}

// EnrichedData 分析开始前收集的外部数据，均为尽力而为，缺失不算错误
type EnrichedData struct {
	ClinicalTrials    []ClinicalTrialSummary `json:"clinicalTrials,omitempty"`
	RecentPapers      []PaperSummary         `json:"recentPapers,omitempty"`
	Financials        *FinancialSummary      `json:"financials,omitempty"`
	Competitors       []CompetitorInfo       `json:"competitors,omitempty"`
	RegulatoryHistory []RegulatoryEvent      `json:"regulatoryHistory,omitempty"`
	News              []NewsArticle          `json:"news,omitempty"`
	FDAEvents         []FDAEvent             `json:"fdaEvents,omitempty"`
}

// EnrichmentStep 单个数据源的收集进度
type EnrichmentStep struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"` // pending / in_progress / completed
	Result string `json:"result,omitempty"`
}

// Status 会话的生命周期状态
type Status string

const (
	StatusEnriching    Status = "enriching"
	StatusAnalyzing    Status = "analyzing"
	StatusDebating     Status = "debating"
	StatusSynthesizing Status = "synthesizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Phase 辩论流水线的阶段，顺序固定
type Phase string

const (
	PhaseEnrichment   Phase = "enrichment"
	PhaseIndependent  Phase = "independent_analysis"
	PhaseConflict     Phase = "conflict_detection"
	PhaseCrossExam    Phase = "cross_examination"
	PhaseVerdict      Phase = "final_verdict"
	PhaseSynthesis    Phase = "synthesis"
	PhaseCompleted    Phase = "completed"
)

// AgreementLevel 交叉质询后的立场标签
type AgreementLevel string

const (
	Agree            AgreementLevel = "agree"
	PartiallyAgree   AgreementLevel = "partially_agree"
	Disagree         AgreementLevel = "disagree"
	StronglyDisagree AgreementLevel = "strongly_disagree"
)

// Evaluation 专家回复尾部携带的结构化评估
type Evaluation struct {
	Scores        map[string]float64 `json:"scores"`
	KeyFindings   []string           `json:"keyFindings"`
	Risks         []string           `json:"risks"`
	Opportunities []string           `json:"opportunities"`
}

// EmptyEvaluation 解析失败时的兜底值
func EmptyEvaluation() Evaluation {
	return Evaluation{
		Scores:        map[string]float64{},
		KeyFindings:   []string{},
		Risks:         []string{},
		Opportunities: []string{},
	}
}

// DebateMessage 一条辩论消息，写入后不再修改。
// Order 在整个会话内严格递增，是时间线重建的唯一排序键。
type DebateMessage struct {
	ID             string         `json:"id,omitempty"`
	PersonaID      PersonaID      `json:"personaId"`
	PersonaName    string         `json:"personaName"`
	PersonaRole    string         `json:"personaRole"`
	Phase          Phase          `json:"phase"`
	Content        string         `json:"content"`
	Evaluation     *Evaluation    `json:"evaluation,omitempty"`
	AgreementLevel AgreementLevel `json:"agreementLevel,omitempty"`
	Order          int            `json:"order"`
	TokenCount     int            `json:"tokenCount"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Severity 意见冲突的严重程度
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// ConflictPosition 冲突中某位专家的立场
type ConflictPosition struct {
	PersonaID  PersonaID `json:"personaId"`
	Position   string    `json:"position"`
	Confidence float64   `json:"confidence"`
}

// Conflict 独立分析之间检测到的意见冲突。
// Resolution 目前不会被写入，保留字段以保持文档结构稳定。
type Conflict struct {
	Topic       string             `json:"topic"`
	Description string             `json:"description"`
	Positions   []ConflictPosition `json:"agentPositions"`
	Severity    Severity           `json:"severity"`
	Resolution  string             `json:"resolution,omitempty"`
}

// DimensionScores 六个固定评估维度，0-100
type DimensionScores struct {
	ClinicalValue       int `json:"clinicalValue"`
	RegulatoryPath      int `json:"regulatoryPath"`
	CommercialPotential int `json:"commercialPotential"`
	CompetitivePosition int `json:"competitivePosition"`
	FinancialHealth     int `json:"financialHealth"`
	IPStrength          int `json:"ipStrength"`
}

// PipelineItem 管线分析条目
type PipelineItem struct {
	Asset                string   `json:"asset"`
	Indication           string   `json:"indication"`
	Phase                string   `json:"phase"`
	ProbabilityOfSuccess float64  `json:"probabilityOfSuccess"`
	EstimatedPeakSales   string   `json:"estimatedPeakSales,omitempty"`
	KeyRisks             []string `json:"keyRisks"`
	CompetitorCount      int      `json:"competitorCount"`
}

// RiskItem 风险矩阵条目
type RiskItem struct {
	Category    string   `json:"category"`
	Level       string   `json:"level"` // low / medium / high / critical
	Description string   `json:"description"`
	Mitigants   []string `json:"mitigants"`
}

// CompetitorItem 竞争格局条目
type CompetitorItem struct {
	Company         string `json:"company"`
	Overlap         string `json:"overlap"`
	Threat          string `json:"threat"` // low / medium / high
	Differentiation string `json:"differentiation"`
}

// AgentVerdict 最终报告中每位专家的结论摘要。
// Degraded 表示该专家的最终意见因调用失败而缺失，未参与评分聚合。
type AgentVerdict struct {
	PersonaID     PersonaID          `json:"personaId"`
	PersonaName   string             `json:"personaName"`
	PersonaNameEn string             `json:"personaNameEn"`
	Content       string             `json:"content,omitempty"`
	Scores        map[string]float64 `json:"scores,omitempty"`
	KeyFindings   []string           `json:"keyFindings,omitempty"`
	Risks         []string           `json:"risks,omitempty"`
	Opportunities []string           `json:"opportunities,omitempty"`
	Degraded      bool               `json:"degraded,omitempty"`
	DegradedNote  string             `json:"degradedNote,omitempty"`
}

// DissensusPoint 报告中的分歧点
type DissensusPoint struct {
	Topic     string `json:"topic"`
	Positions []struct {
		PersonaID PersonaID `json:"personaId"`
		View      string    `json:"view"`
	} `json:"positions"`
}

// RecommendedExpert 建议咨询的真人专家
type RecommendedExpert struct {
	ExpertName     string   `json:"expertName"`
	Specialty      string   `json:"specialty"`
	Reason         string   `json:"reason"`
	RelevantTopics []string `json:"relevantTopics,omitempty"`
}

// FinalReport 整个流水线的最终产物，生成后不可变。
// OverallScore 与 DimensionScores 始终以聚合器的计算结果为准，
// 模型自己给出的数字不被采信。
type FinalReport struct {
	ExecutiveSummary    string              `json:"executiveSummary"`
	OverallScore        int                 `json:"overallScore"`
	DimensionScores     DimensionScores     `json:"dimensionScores"`
	PipelineAnalysis    []PipelineItem      `json:"pipelineAnalysis"`
	RiskMatrix          []RiskItem          `json:"riskMatrix"`
	CompetitorLandscape []CompetitorItem    `json:"competitorLandscape"`
	AgentVerdicts       []AgentVerdict      `json:"agentVerdicts"`
	ConsensusPoints     []string            `json:"consensusPoints"`
	DissensusPoints     []DissensusPoint    `json:"dissensusPoints"`
	OpenQuestions       []string            `json:"openQuestions"`
	RecommendedExperts  []RecommendedExpert `json:"recommendedExperts"`
}

// EmptyReport 综合失败时的兜底报告骨架
func EmptyReport(rawSummary string) *FinalReport {
	return &FinalReport{
		ExecutiveSummary:    rawSummary,
		PipelineAnalysis:    []PipelineItem{},
		RiskMatrix:          []RiskItem{},
		CompetitorLandscape: []CompetitorItem{},
		AgentVerdicts:       []AgentVerdict{},
		ConsensusPoints:     []string{},
		DissensusPoints:     []DissensusPoint{},
		OpenQuestions:       []string{},
		RecommendedExperts:  []RecommendedExpert{},
	}
}

// AgentSlot 某位专家在某个阶段的降级记录。
// 辩论记录里不会写入任何占位内容，UI 凭此区分"专家缺席"与"会话失败"。
type AgentSlot struct {
	PersonaID PersonaID `json:"personaId"`
	Phase     Phase     `json:"phase"`
	Reason    string    `json:"reason"`
}

// Session 分析会话聚合根
type Session struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	Company         CompanyInput     `json:"company"`
	Status          Status           `json:"status"`
	CurrentPhase    Phase            `json:"currentPhase"`
	Progress        int              `json:"progress"`
	EnrichmentSteps []EnrichmentStep `json:"enrichmentSteps,omitempty"`
	EnrichedData    *EnrichedData    `json:"enrichedData,omitempty"`
	Conflicts       []Conflict       `json:"conflicts,omitempty"`
	DegradedSlots   []AgentSlot      `json:"degradedSlots,omitempty"`
	Report          *FinalReport     `json:"report,omitempty"`
	Error           string           `json:"error,omitempty"`
	TotalTokens     int              `json:"totalTokens"`
	CreatedAt       time.Time        `json:"createdAt"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
}

// ValidSector 判断板块是否在固定枚举内
func ValidSector(s string) bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

package model

import "time"

// RiskLevel 综合风险等级
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Urgency 物资需求紧急程度
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
)

// RouteStatus 通道安全状态
type RouteStatus string

const (
	RouteSafe     RouteStatus = "Safe"
	RouteCaution  RouteStatus = "Caution"
	RouteHighRisk RouteStatus = "High Risk"
	RouteBlocked  RouteStatus = "Blocked"
)

// SupplyCategory 物资预测所属部门
type SupplyCategory string

const (
	CategoryWASH       SupplyCategory = "WASH"
	CategoryHealth     SupplyCategory = "Health"
	CategoryFood       SupplyCategory = "Food"
	CategoryShelter    SupplyCategory = "Shelter"
	CategoryProtection SupplyCategory = "Protection"
	CategoryLogistics  SupplyCategory = "Logistics"
)

// DateRange 请求的日期窗口，格式 YYYY-MM-DD
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Disaggregation 人口分组比例，各项为独立估计（子群体互有重叠，不要求合计 100）
type Disaggregation struct {
	WomenPct    float64 `json:"womenPercentage"`
	ChildrenPct float64 `json:"childrenPercentage"`
	MenPct      float64 `json:"menPercentage"`
	PWDPct      float64 `json:"pwdPercentage"`
}

// Population 受影响人口
type Population struct {
	TotalPiN         string         `json:"totalPiN"`
	WomenAndChildren string         `json:"womenAndChildren"`
	ElderlyAndPWD    string         `json:"elderlyAndPWD"`
	Disaggregation   Disaggregation `json:"disaggregationData"`
}

// GenderLens 性别与保护视角评估
type GenderLens struct {
	Risks                []string `json:"risks"`
	Opportunities        []string `json:"opportunities"`
	ProtectionDirectives []string `json:"protectionDirectives"`
}

// SectorAnalysis 部门发现
type SectorAnalysis struct {
	Sector       string `json:"sector"`
	Findings     string `json:"findings"`
	Severity     string `json:"severity"`
	PeopleInNeed string `json:"peopleInNeed"`
	Intervention string `json:"intervention"`
}

// SupplyForecast 量化的物资需求
type SupplyForecast struct {
	Item           string         `json:"item"`
	Category       SupplyCategory `json:"category"`
	QuantityNeeded string         `json:"quantityNeeded"`
	Unit           string         `json:"unit"`
	Urgency        Urgency        `json:"urgency"`
	LeadTimeDays   float64        `json:"leadTimeDays"`
	GapAnalysis    string         `json:"gapAnalysis"`
}

// LogisticsNeed 物流需求
type LogisticsNeed struct {
	Item          string  `json:"item"`
	Quantity      string  `json:"quantity"`
	Urgency       Urgency `json:"urgency"`
	Beneficiaries string  `json:"beneficiaries"`
}

// Route 通道 / 路线状态
type Route struct {
	Route   string      `json:"route"`
	Status  RouteStatus `json:"status"`
	Details string      `json:"details"`
}

// Timeline 响应时间线，自由文本，不解析为机器时间
type Timeline struct {
	Immediate    string `json:"immediate"`
	Preparedness string `json:"preparedness"`
	Turnaround   string `json:"turnaround"`
}

// Citation 证据引用，去重键为 URI
type Citation struct {
	Title  string `json:"title"`
	URI    string `json:"uri"`
	Source string `json:"source,omitempty"`
}

// AnalysisResult 一次态势合成的结构化输出
type AnalysisResult struct {
	Title             string           `json:"title"`
	Summary           string           `json:"summary"`
	RiskLevel         RiskLevel        `json:"riskLevel"`
	Methodology       string           `json:"methodology"`
	Context           string           `json:"context"`
	DateRange         *DateRange       `json:"dateRange,omitempty"`
	Population        Population       `json:"population"`
	GenderLens        GenderLens       `json:"genderLens"`
	Drivers           []string         `json:"drivers"`
	GeographicFocus   []string         `json:"geographicFocus"`
	Sectors           []SectorAnalysis `json:"sectors"`
	SupplyForecasting []SupplyForecast `json:"supplyForecasting"`
	Logistics         []LogisticsNeed  `json:"logistics"`
	Mobility          []Route          `json:"mobility"`
	SafetySecurity    string           `json:"safetySecurity"`
	SeverityAnalysis  string           `json:"severityAnalysis"`
	CopingMechanisms  []string         `json:"copingMechanisms"`
	ResponseGaps      []string         `json:"responseGaps"`
	Recommendations   []string         `json:"recommendations"`
	Timeline          Timeline         `json:"timeline"`
	Citations         []Citation       `json:"citations,omitempty"`
}

// TimestampLayout 报告与深度研究的时间戳格式（UTC，毫秒精度）
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SavedReport 归档中的报告，只由归档存储创建，创建后不再修改
type SavedReport struct {
	AnalysisResult
	ReportID  string `json:"reportId"`
	Timestamp string `json:"timestamp"`
}

// Time 解析保存时间，兼容只有日期的旧记录，无法解析时返回零值
func (r *SavedReport) Time() time.Time {
	if t, err := time.Parse(time.RFC3339Nano, r.Timestamp); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, r.Timestamp); err == nil {
		return t
	}
	return time.Time{}
}

// RegionalTrend 区域趋势
type RegionalTrend struct {
	Region string   `json:"region"`
	Trends []string `json:"trends"`
}

// SectorImplication 深度研究中的部门影响
type SectorImplication struct {
	Sector   string `json:"sector"`
	Findings string `json:"findings"`
}

// DeepDiveResult 开放式研究的输出，不进入归档
type DeepDiveResult struct {
	Title                   string              `json:"title"`
	Summary                 string              `json:"summary"`
	RegionalTrends          []RegionalTrend     `json:"regionalTrends"`
	CrossRegionalAssessment []string            `json:"crossRegionalAssessment"`
	Outlook                 []string            `json:"outlook"`
	SectorImplications      []SectorImplication `json:"sectorImplications"`
	FundingImpact           string              `json:"fundingImpact"`
	StrategicActions        []string            `json:"strategicActions"`
	Citations               []Citation          `json:"citations"`
	Timestamp               string              `json:"timestamp"`
}

// Package schema 定义发送给推理服务的结构化输出约束（与 model 包中的类型一一对应），
// 并在响应返回后按同一份约束做严格校验。
package schema

import "google.golang.org/genai"

var (
	riskLevels       = []string{"Low", "Medium", "High", "Critical"}
	urgencies        = []string{"Critical", "High", "Medium"}
	routeStatuses    = []string{"Safe", "Caution", "High Risk", "Blocked"}
	supplyCategories = []string{"WASH", "Health", "Food", "Shelter", "Protection", "Logistics"}
)

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func enum(values []string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Format: "enum", Enum: values}
}

func percent() *genai.Schema {
	lo, hi := 0.0, 100.0
	return &genai.Schema{Type: genai.TypeNumber, Minimum: &lo, Maximum: &hi}
}

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func listOf(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

// object 构造对象约束，order 中列出的字段全部为必填
func object(props map[string]*genai.Schema, order ...string) *genai.Schema {
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         order,
		PropertyOrdering: order,
	}
}

// AnalysisResult 返回 model.AnalysisResult 的输出约束。
// dateRange 与 citations 由系统回填，不属于模型输出。
func AnalysisResult() *genai.Schema {
	return object(map[string]*genai.Schema{
		"title":       str(),
		"summary":     str(),
		"riskLevel":   enum(riskLevels),
		"methodology": str(),
		"context":     str(),
		"population": object(map[string]*genai.Schema{
			"totalPiN":         str(),
			"womenAndChildren": str(),
			"elderlyAndPWD":    str(),
			"disaggregationData": object(map[string]*genai.Schema{
				"womenPercentage":    percent(),
				"childrenPercentage": percent(),
				"menPercentage":      percent(),
				"pwdPercentage":      percent(),
			}, "womenPercentage", "childrenPercentage", "menPercentage", "pwdPercentage"),
		}, "totalPiN", "womenAndChildren", "elderlyAndPWD", "disaggregationData"),
		"genderLens": object(map[string]*genai.Schema{
			"risks":                strList(),
			"opportunities":        strList(),
			"protectionDirectives": strList(),
		}, "risks", "opportunities", "protectionDirectives"),
		"drivers":         strList(),
		"geographicFocus": strList(),
		"sectors": listOf(object(map[string]*genai.Schema{
			"sector":       str(),
			"findings":     str(),
			"severity":     str(),
			"peopleInNeed": str(),
			"intervention": str(),
		}, "sector", "findings", "severity", "peopleInNeed", "intervention")),
		"supplyForecasting": listOf(object(map[string]*genai.Schema{
			"item":           str(),
			"category":       enum(supplyCategories),
			"quantityNeeded": str(),
			"unit":           str(),
			"urgency":        enum(urgencies),
			"leadTimeDays":   {Type: genai.TypeNumber},
			"gapAnalysis":    str(),
		}, "item", "category", "quantityNeeded", "unit", "urgency", "leadTimeDays", "gapAnalysis")),
		"logistics": listOf(object(map[string]*genai.Schema{
			"item":          str(),
			"quantity":      str(),
			"urgency":       enum(urgencies),
			"beneficiaries": str(),
		}, "item", "quantity", "urgency", "beneficiaries")),
		"mobility": listOf(object(map[string]*genai.Schema{
			"route":   str(),
			"status":  enum(routeStatuses),
			"details": str(),
		}, "route", "status", "details")),
		"safetySecurity":   str(),
		"severityAnalysis": str(),
		"copingMechanisms": strList(),
		"responseGaps":     strList(),
		"recommendations":  strList(),
		"timeline": object(map[string]*genai.Schema{
			"immediate":    str(),
			"preparedness": str(),
			"turnaround":   str(),
		}, "immediate", "preparedness", "turnaround"),
	},
		"title", "summary", "riskLevel", "methodology", "context", "population", "genderLens",
		"drivers", "geographicFocus", "sectors", "supplyForecasting", "logistics", "mobility",
		"safetySecurity", "severityAnalysis", "copingMechanisms", "responseGaps", "recommendations",
		"timeline",
	)
}

// DeepDiveResult 返回 model.DeepDiveResult 的输出约束，citations 与 timestamp 由系统回填
func DeepDiveResult() *genai.Schema {
	return object(map[string]*genai.Schema{
		"title":   str(),
		"summary": str(),
		"regionalTrends": listOf(object(map[string]*genai.Schema{
			"region": str(),
			"trends": strList(),
		}, "region", "trends")),
		"crossRegionalAssessment": strList(),
		"outlook":                 strList(),
		"sectorImplications": listOf(object(map[string]*genai.Schema{
			"sector":   str(),
			"findings": str(),
		}, "sector", "findings")),
		"fundingImpact":    str(),
		"strategicActions": strList(),
	},
		"title", "summary", "regionalTrends", "crossRegionalAssessment", "outlook",
		"sectorImplications", "fundingImpact", "strategicActions",
	)
}

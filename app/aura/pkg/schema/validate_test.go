package schema_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/iWorld-y/aura/app/aura/pkg/llm/llmtest"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/aura/pkg/schema"
)

func fixtureMap(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(llmtest.AnalysisJSON), &m))
	return m
}

func encode(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestDecode_AcceptsCompleteResult(t *testing.T) {
	var got model.AnalysisResult
	require.NoError(t, schema.Decode(schema.AnalysisResult(), llmtest.AnalysisJSON, &got))

	assert.Equal(t, "Darfur Displacement Surge", got.Title)
	assert.Equal(t, model.RiskCritical, got.RiskLevel)
	assert.Equal(t, 48.5, got.Population.Disaggregation.ChildrenPct)
	require.Len(t, got.Mobility, 1)
	assert.Equal(t, model.RouteHighRisk, got.Mobility[0].Status)
	require.Len(t, got.SupplyForecasting, 1)
	assert.Equal(t, model.CategoryHealth, got.SupplyForecasting[0].Category)
	assert.Equal(t, "72 hours", got.Timeline.Immediate)
}

func TestDecode_AcceptsFencedJSON(t *testing.T) {
	var got model.DeepDiveResult
	text := "```json\n" + llmtest.DeepDiveJSON + "\n```"
	require.NoError(t, schema.Decode(schema.DeepDiveResult(), text, &got))
	assert.Len(t, got.RegionalTrends, 2)
}

// 任何一个必填字段缺失都必须整体拒绝
func TestDecode_RejectsEachMissingTopLevelField(t *testing.T) {
	desc := schema.AnalysisResult()
	for _, field := range desc.Required {
		t.Run(field, func(t *testing.T) {
			m := fixtureMap(t)
			delete(m, field)

			got := model.AnalysisResult{Title: "untouched"}
			err := schema.Decode(desc, encode(t, m), &got)
			require.ErrorIs(t, err, schema.ErrSchemaViolation)

			var ve *schema.ViolationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "$."+field, ve.Path)
			assert.Equal(t, "untouched", got.Title, "no partial result may be written")
		})
	}
}

func TestDecode_RejectsNestedViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		path   string
	}{
		{
			name:   "bad risk enum",
			mutate: func(m map[string]any) { m["riskLevel"] = "Extreme" },
			path:   "$.riskLevel",
		},
		{
			name: "bad route status",
			mutate: func(m map[string]any) {
				m["mobility"].([]any)[0].(map[string]any)["status"] = "Open"
			},
			path: "$.mobility[0].status",
		},
		{
			name: "missing nested timeline field",
			mutate: func(m map[string]any) {
				delete(m["timeline"].(map[string]any), "turnaround")
			},
			path: "$.timeline.turnaround",
		},
		{
			name: "percentage above 100",
			mutate: func(m map[string]any) {
				pop := m["population"].(map[string]any)
				pop["disaggregationData"].(map[string]any)["womenPercentage"] = 120
			},
			path: "$.population.disaggregationData.womenPercentage",
		},
		{
			name: "percentage as string",
			mutate: func(m map[string]any) {
				pop := m["population"].(map[string]any)
				pop["disaggregationData"].(map[string]any)["pwdPercentage"] = "15%"
			},
			path: "$.population.disaggregationData.pwdPercentage",
		},
		{
			name:   "list of strings holds number",
			mutate: func(m map[string]any) { m["drivers"] = []any{"Conflict", 3} },
			path:   "$.drivers[1]",
		},
		{
			name:   "object where array expected",
			mutate: func(m map[string]any) { m["sectors"] = map[string]any{"sector": "WASH"} },
			path:   "$.sectors",
		},
		{
			name:   "null required string",
			mutate: func(m map[string]any) { m["summary"] = nil },
			path:   "$.summary",
		},
		{
			name: "logistics urgency outside enum",
			mutate: func(m map[string]any) {
				m["logistics"].([]any)[0].(map[string]any)["urgency"] = "Low"
			},
			path: "$.logistics[0].urgency",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fixtureMap(t)
			tt.mutate(m)

			var got model.AnalysisResult
			err := schema.Decode(schema.AnalysisResult(), encode(t, m), &got)
			require.ErrorIs(t, err, schema.ErrSchemaViolation)

			var ve *schema.ViolationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.path, ve.Path)
		})
	}
}

func TestDecode_PercentagesNeedNotSumTo100(t *testing.T) {
	m := fixtureMap(t)
	pop := m["population"].(map[string]any)
	pop["disaggregationData"] = map[string]any{
		"womenPercentage": 100, "childrenPercentage": 100, "menPercentage": 0, "pwdPercentage": 100,
	}

	var got model.AnalysisResult
	require.NoError(t, schema.Decode(schema.AnalysisResult(), encode(t, m), &got))
}

func TestDecode_RejectsNonJSON(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Analysis unavailable.",
		`{"title": "cut off`,
		`[]`,
		llmtest.AnalysisJSON + `{"title":"second"}`,
	}
	for _, in := range inputs {
		var got model.AnalysisResult
		err := schema.Decode(schema.AnalysisResult(), in, &got)
		assert.ErrorIs(t, err, schema.ErrSchemaViolation, "input %q", in)
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	m := fixtureMap(t)
	m["keyEntities"] = []any{"RSF"}

	var got model.AnalysisResult
	require.NoError(t, schema.Decode(schema.AnalysisResult(), encode(t, m), &got))
}

// 模型自带的 dateRange、citations 等回填字段即使类型不对也不影响解码
func TestDecode_IgnoresMistypedBackfilledFields(t *testing.T) {
	extras := []map[string]any{
		{"dateRange": "last 30 days"},
		{"citations": "see sources above"},
		{"dateRange": []any{1, 2}, "citations": map[string]any{"uri": 3}},
	}
	for _, extra := range extras {
		m := fixtureMap(t)
		for k, v := range extra {
			m[k] = v
		}

		var got model.AnalysisResult
		require.NoError(t, schema.Decode(schema.AnalysisResult(), encode(t, m), &got))
		assert.Equal(t, "Darfur Displacement Surge", got.Title)
		assert.Nil(t, got.DateRange)
		assert.Nil(t, got.Citations)
	}

	var dd map[string]any
	require.NoError(t, json.Unmarshal([]byte(llmtest.DeepDiveJSON), &dd))
	dd["timestamp"] = 1736930000
	dd["citations"] = "none"
	var deep model.DeepDiveResult
	require.NoError(t, schema.Decode(schema.DeepDiveResult(), encode(t, dd), &deep))
	assert.Empty(t, deep.Timestamp)
	assert.Empty(t, deep.Citations)
}

func TestDecode_IgnoresMistypedNestedExtras(t *testing.T) {
	m := fixtureMap(t)
	m["timeline"].(map[string]any)["notes"] = []any{"x"}
	m["mobility"].([]any)[0].(map[string]any)["lastChecked"] = map[string]any{"day": 1}

	var got model.AnalysisResult
	require.NoError(t, schema.Decode(schema.AnalysisResult(), encode(t, m), &got))
	assert.Equal(t, "72 hours", got.Timeline.Immediate)
	assert.Equal(t, model.RouteHighRisk, got.Mobility[0].Status)
}

// 描述符中每个对象的所有属性都必须是必填
func TestDescriptors_RequireEveryProperty(t *testing.T) {
	var walk func(path string, d *genai.Schema)
	walk = func(path string, d *genai.Schema) {
		if d == nil {
			return
		}
		if d.Type == genai.TypeObject {
			assert.Len(t, d.Required, len(d.Properties), path)
			for _, name := range d.Required {
				assert.Contains(t, d.Properties, name, path)
			}
			for name, p := range d.Properties {
				walk(path+"."+name, p)
			}
		}
		walk(path+"[]", d.Items)
	}
	walk("analysis", schema.AnalysisResult())
	walk("deepdive", schema.DeepDiveResult())
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, schema.StripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, schema.StripFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, schema.StripFence("  {\"a\":1}\n"))
	assert.True(t, strings.HasPrefix(schema.StripFence("```JSON\n[]\n```"), "["))
}

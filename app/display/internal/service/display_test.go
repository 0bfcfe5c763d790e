package service_test

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/aura/app/aura/pkg/alignment"
	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/llm/llmtest"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/aura/pkg/session"
	"github.com/iWorld-y/aura/app/display/internal/data"
	"github.com/iWorld-y/aura/app/display/internal/service"
	"github.com/iWorld-y/aura/app/display/internal/usecase"
)

type testServer struct {
	srv  *http.Server
	fake *llmtest.Fake
}

func newTestServer(t *testing.T, fake *llmtest.Fake) *testServer {
	t.Helper()
	cfg := &config.Config{Archive: config.ArchiveConfig{Backend: "memory"}}
	cfg.ApplyDefaults()

	d, cleanup, err := data.NewData(cfg, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	reports := data.NewReportRepo(d, log.DefaultLogger)
	analysis := usecase.NewAnalysisUseCase(
		engine.New(cfg, fake),
		alignment.New(cfg, fake, nil),
		reports,
		session.NewTracker(),
		log.DefaultLogger,
	)
	svc := service.NewDisplayService(usecase.NewReportUseCase(reports, log.DefaultLogger), analysis, log.DefaultLogger)

	srv := http.NewServer()
	svc.RegisterHTTP(srv)
	return &testServer{srv: srv, fake: fake}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *nethttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestSynthesize_ArchivesAndTracksSession(t *testing.T) {
	ts := newTestServer(t, llmtest.NewFake(llmtest.AnalysisJSON))

	rec := ts.do(t, "POST", "/api/v1/synthesize", `{"session":"ops","text":"Clashes near El Fasher","regions":["Sudan"]}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	var saved model.SavedReport
	decode(t, rec, &saved)
	assert.Equal(t, "Darfur Displacement Surge", saved.Title)
	require.NotEmpty(t, saved.ReportID)

	rec = ts.do(t, "GET", "/api/v1/sessions/ops", "")
	require.Equal(t, 200, rec.Code)
	var st struct {
		Status string             `json:"status"`
		Report *model.SavedReport `json:"report"`
	}
	decode(t, rec, &st)
	assert.Equal(t, "succeeded", st.Status)
	assert.Equal(t, saved.ReportID, st.Report.ReportID)

	rec = ts.do(t, "GET", "/api/v1/reports/"+saved.ReportID, "")
	require.Equal(t, 200, rec.Code)

	rec = ts.do(t, "GET", "/api/v1/reports?q=darfur", "")
	require.Equal(t, 200, rec.Code)
	var list service.ListReportsReply
	decode(t, rec, &list)
	assert.Equal(t, 1, list.Total)
}

func TestSynthesize_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		fake   *llmtest.Fake
		body   string
		code   int
		reason string
	}{
		{
			name:   "schema violation",
			fake:   llmtest.NewFake(`{"title":"only a title"}`),
			body:   `{"text":"report"}`,
			code:   422,
			reason: "SCHEMA_VIOLATION",
		},
		{
			name:   "collaborator unavailable",
			fake:   llmtest.NewFailing(errors.New("connection reset")),
			body:   `{"text":"report"}`,
			code:   503,
			reason: "COLLABORATOR_UNAVAILABLE",
		},
		{
			name:   "topic without regions",
			fake:   llmtest.NewFake(llmtest.AnalysisJSON),
			body:   `{"topic":"cholera"}`,
			code:   400,
			reason: "INVALID_INPUT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.fake)

			rec := ts.do(t, "POST", "/api/v1/synthesize", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.reason)

			// 失败的合成不会写入报告库
			rec = ts.do(t, "GET", "/api/v1/reports", "")
			var list service.ListReportsReply
			decode(t, rec, &list)
			assert.Zero(t, list.Total)

			rec = ts.do(t, "GET", "/api/v1/sessions/default", "")
			assert.Contains(t, rec.Body.String(), `"failed"`)
		})
	}
}

func TestReports_NotFoundAndDelete(t *testing.T) {
	ts := newTestServer(t, llmtest.NewFake(llmtest.AnalysisJSON))

	rec := ts.do(t, "GET", "/api/v1/reports/missing", "")
	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "REPORT_NOT_FOUND")

	rec = ts.do(t, "DELETE", "/api/v1/reports/missing", "")
	assert.Equal(t, 200, rec.Code)

	for i := 0; i < 2; i++ {
		require.Equal(t, 200, ts.do(t, "POST", "/api/v1/synthesize", `{"text":"report"}`).Code)
	}
	rec = ts.do(t, "DELETE", "/api/v1/reports", "")
	require.Equal(t, 200, rec.Code)

	var list service.ListReportsReply
	decode(t, ts.do(t, "GET", "/api/v1/reports", ""), &list)
	assert.Zero(t, list.Total)
}

func TestReports_InvalidDateFilter(t *testing.T) {
	ts := newTestServer(t, llmtest.NewFake(llmtest.AnalysisJSON))
	rec := ts.do(t, "GET", "/api/v1/reports?start=15-01-2025", "")
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_DATE")
}

func TestDeepDive(t *testing.T) {
	ts := newTestServer(t, llmtest.NewFake(llmtest.DeepDiveJSON, llmtest.Web("OCHA", "https://ocha.org/a")))

	rec := ts.do(t, "POST", "/api/v1/deepdive", `{"topic":"access","regions":["Sudan","Eastern DRC"]}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	var got model.DeepDiveResult
	decode(t, rec, &got)
	assert.Len(t, got.RegionalTrends, 2)
	require.Len(t, got.Citations, 1)

	// 专题研究不归档
	var list service.ListReportsReply
	decode(t, ts.do(t, "GET", "/api/v1/reports", ""), &list)
	assert.Zero(t, list.Total)
}

func TestContextEndpoints(t *testing.T) {
	ts := newTestServer(t, llmtest.NewFake("Aligned briefing", llmtest.Web("ReliefWeb", "https://reliefweb.int/r")))

	rec := ts.do(t, "POST", "/api/v1/context/align", `{"text":"raw notes","regions":["Sudan"]}`)
	require.Equal(t, 200, rec.Code)
	var aligned service.AlignReply
	decode(t, rec, &aligned)
	assert.Equal(t, "Aligned briefing", aligned.Text)

	rec = ts.do(t, "POST", "/api/v1/context/fetch", `{"regions":["Sudan"],"startDate":"2025-01-01","endDate":"2025-01-31"}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	var briefing alignment.ScopedContext
	decode(t, rec, &briefing)
	assert.Equal(t, "Aligned briefing", briefing.Text)
	require.Len(t, briefing.Citations, 1)

	rec = ts.do(t, "POST", "/api/v1/context/fetch", `{"regions":[]}`)
	assert.Equal(t, 400, rec.Code)
}

func TestContextFetch_CollaboratorDown(t *testing.T) {
	ts := newTestServer(t, llmtest.NewFailing(llm.Unavailable("gemini", errors.New("503"))))
	rec := ts.do(t, "POST", "/api/v1/context/fetch", `{"regions":["Sudan"]}`)
	assert.Equal(t, 503, rec.Code)
}

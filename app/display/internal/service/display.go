package service

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/aura/app/aura/pkg/archive"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/display/internal/domain"
	"github.com/iWorld-y/aura/app/display/internal/usecase"
)

// ScopeReq 地区与时间窗口
type ScopeReq struct {
	Regions   []string `json:"regions"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

func (s ScopeReq) dateRange() *model.DateRange {
	if s.StartDate == "" && s.EndDate == "" {
		return nil
	}
	return &model.DateRange{Start: s.StartDate, End: s.EndDate}
}

type SynthesizeReq struct {
	ScopeReq
	Session       string `json:"session"`
	Text          string `json:"text"`
	Topic         string `json:"topic"`
	ReferenceText string `json:"referenceText"`
	FetchContext  bool   `json:"fetchContext"`
	Align         bool   `json:"align"`
}

type DeepDiveReq struct {
	ScopeReq
	Topic string `json:"topic"`
}

type AlignReq struct {
	ScopeReq
	Text string `json:"text"`
}

type AlignReply struct {
	Text string `json:"text"`
}

type ListReportsReply struct {
	Reports []model.SavedReport `json:"reports"`
	Total   int                 `json:"total"`
}

type SuccessReply struct {
	Success bool `json:"success"`
}

var success = &SuccessReply{Success: true}

type DisplayService struct {
	ucReport   *usecase.ReportUseCase
	ucAnalysis *usecase.AnalysisUseCase
	log        *log.Helper
}

func NewDisplayService(ucReport *usecase.ReportUseCase, ucAnalysis *usecase.AnalysisUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucReport:   ucReport,
		ucAnalysis: ucAnalysis,
		log:        log.NewHelper(logger),
	}
}

// RegisterHTTP 注册 /api/v1 下的全部路由
func (s *DisplayService) RegisterHTTP(srv *http.Server) {
	r := srv.Route("/api/v1")
	r.POST("/synthesize", s.Synthesize)
	r.GET("/sessions/{key}", s.GetSession)
	r.POST("/deepdive", s.DeepDive)
	r.POST("/context/align", s.AlignContext)
	r.POST("/context/fetch", s.FetchContext)
	r.GET("/reports", s.ListReports)
	r.GET("/reports/{id}", s.GetReport)
	r.DELETE("/reports/{id}", s.DeleteReport)
	r.DELETE("/reports", s.ClearReports)
}

// invoke 经过服务端中间件执行业务逻辑并写出 JSON 结果
func invoke(ctx http.Context, operation string, req any, fn func(context.Context, any) (any, error)) error {
	http.SetOperation(ctx, operation)
	out, err := ctx.Middleware(fn)(ctx, req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Result(200, out)
}

func (s *DisplayService) Synthesize(ctx http.Context) error {
	var req SynthesizeReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return invoke(ctx, "/aura.display.v1/Synthesize", &req, func(c context.Context, _ any) (any, error) {
		return s.ucAnalysis.Synthesize(c, &domain.SynthesisRequest{
			Session:       req.Session,
			FreeText:      req.Text,
			Topic:         req.Topic,
			Regions:       req.Regions,
			DateRange:     req.dateRange(),
			ReferenceText: req.ReferenceText,
			FetchContext:  req.FetchContext,
			Align:         req.Align,
		})
	})
}

func (s *DisplayService) GetSession(ctx http.Context) error {
	key := ctx.Vars().Get("key")
	return invoke(ctx, "/aura.display.v1/GetSession", key, func(context.Context, any) (any, error) {
		return s.ucAnalysis.Session(key), nil
	})
}

func (s *DisplayService) DeepDive(ctx http.Context) error {
	var req DeepDiveReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return invoke(ctx, "/aura.display.v1/DeepDive", &req, func(c context.Context, _ any) (any, error) {
		return s.ucAnalysis.DeepDive(c, &domain.DeepDiveRequest{
			Topic:     req.Topic,
			Regions:   req.Regions,
			DateRange: req.dateRange(),
		})
	})
}

func (s *DisplayService) AlignContext(ctx http.Context) error {
	var req AlignReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return invoke(ctx, "/aura.display.v1/AlignContext", &req, func(c context.Context, _ any) (any, error) {
		return &AlignReply{Text: s.ucAnalysis.Align(c, req.Text, req.Regions, req.dateRange())}, nil
	})
}

func (s *DisplayService) FetchContext(ctx http.Context) error {
	var req ScopeReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return invoke(ctx, "/aura.display.v1/FetchContext", &req, func(c context.Context, _ any) (any, error) {
		return s.ucAnalysis.FetchContext(c, req.Regions, req.dateRange())
	})
}

func (s *DisplayService) ListReports(ctx http.Context) error {
	q := ctx.Query()
	filter := domain.ReportFilter{Query: strings.TrimSpace(q.Get("q"))}
	if v := q.Get("start"); v != "" {
		d, err := archive.ParseDay(v)
		if err != nil {
			return errors.BadRequest("INVALID_DATE", "start must be YYYY-MM-DD")
		}
		filter.Start = &d
	}
	if v := q.Get("end"); v != "" {
		d, err := archive.ParseDay(v)
		if err != nil {
			return errors.BadRequest("INVALID_DATE", "end must be YYYY-MM-DD")
		}
		filter.End = &d
	}

	return invoke(ctx, "/aura.display.v1/ListReports", &filter, func(c context.Context, _ any) (any, error) {
		reports, err := s.ucReport.List(c, filter)
		if err != nil {
			return nil, err
		}
		return &ListReportsReply{Reports: reports, Total: len(reports)}, nil
	})
}

func (s *DisplayService) GetReport(ctx http.Context) error {
	id := ctx.Vars().Get("id")
	return invoke(ctx, "/aura.display.v1/GetReport", id, func(c context.Context, _ any) (any, error) {
		return s.ucReport.GetByID(c, id)
	})
}

func (s *DisplayService) DeleteReport(ctx http.Context) error {
	id := ctx.Vars().Get("id")
	return invoke(ctx, "/aura.display.v1/DeleteReport", id, func(c context.Context, _ any) (any, error) {
		return success, s.ucReport.Delete(c, id)
	})
}

func (s *DisplayService) ClearReports(ctx http.Context) error {
	return invoke(ctx, "/aura.display.v1/ClearReports", nil, func(c context.Context, _ any) (any, error) {
		return success, s.ucReport.Clear(c)
	})
}

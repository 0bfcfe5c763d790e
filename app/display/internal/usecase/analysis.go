package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/aura/app/aura/pkg/alignment"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/aura/pkg/session"
	"github.com/iWorld-y/aura/app/display/internal/domain"
	"github.com/iWorld-y/aura/app/display/internal/repo"
)

// ErrSuperseded 同一会话上已有更新的请求，本次结果被丢弃
var ErrSuperseded = errors.New("synthesis superseded by a newer request")

// AnalysisUseCase 合成、专题研究与背景资料业务逻辑
type AnalysisUseCase struct {
	engine   repo.Synthesizer
	context  repo.ContextProvider
	reports  repo.ReportRepo
	sessions *session.Tracker
	log      *log.Helper
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(eng repo.Synthesizer, cp repo.ContextProvider, reports repo.ReportRepo, sessions *session.Tracker, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		engine:   eng,
		context:  cp,
		reports:  reports,
		sessions: sessions,
		log:      log.NewHelper(logger),
	}
}

// Synthesize 生成并归档一份报告，同时推进会话状态。
// 只有成功且仍是会话最新请求的结果才会写入报告库。
func (uc *AnalysisUseCase) Synthesize(ctx context.Context, req *domain.SynthesisRequest) (*model.SavedReport, error) {
	key := req.Session
	if key == "" {
		key = domain.DefaultSession
	}
	ticket := uc.sessions.Begin(key)

	result, err := uc.synthesize(ctx, req)
	if err != nil {
		uc.sessions.Fail(ticket, err)
		uc.log.WithContext(ctx).Errorf("synthesis for session %q failed: %v", key, err)
		return nil, err
	}
	if !uc.sessions.Current(ticket) {
		uc.log.WithContext(ctx).Infof("discarding stale synthesis for session %q", key)
		return nil, ErrSuperseded
	}

	saved, err := uc.reports.SaveReport(ctx, result)
	if err != nil {
		uc.sessions.Fail(ticket, err)
		return nil, err
	}
	if !uc.sessions.Succeed(ticket, saved) {
		// 归档期间出现了更新的请求，撤回刚写入的报告
		uc.log.WithContext(ctx).Infof("session %q superseded while archiving, removing report %s", key, saved.ReportID)
		if err := uc.reports.DeleteReport(ctx, saved.ReportID); err != nil {
			uc.log.WithContext(ctx).Warnf("remove superseded report %s: %v", saved.ReportID, err)
		}
		return nil, ErrSuperseded
	}
	return saved, nil
}

func (uc *AnalysisUseCase) synthesize(ctx context.Context, req *domain.SynthesisRequest) (*model.AnalysisResult, error) {
	scope := engine.Scope{
		Regions:       req.Regions,
		DateRange:     req.DateRange,
		ReferenceText: req.ReferenceText,
	}

	if req.FetchContext {
		fetched, err := uc.context.FetchScoped(ctx, req.Regions, req.DateRange)
		if err != nil {
			return nil, err
		}
		scope.ReferenceText = joinContext(scope.ReferenceText, fetched.Text)
		scope.Citations = fetched.Citations
	}
	if req.Align && scope.ReferenceText != "" {
		scope.ReferenceText = uc.context.Align(ctx, scope.ReferenceText, req.Regions, req.DateRange)
	}

	return uc.engine.Synthesize(ctx, engine.Input{
		FreeText: req.FreeText,
		Topic:    req.Topic,
		Regions:  req.Regions,
	}, scope)
}

// Session 返回会话当前状态
func (uc *AnalysisUseCase) Session(key string) session.State {
	return uc.sessions.State(key)
}

// DeepDive 跨地区专题研究，结果不归档
func (uc *AnalysisUseCase) DeepDive(ctx context.Context, req *domain.DeepDiveRequest) (*model.DeepDiveResult, error) {
	return uc.engine.DeepDive(ctx, req.Topic, req.Regions, engine.Scope{DateRange: req.DateRange})
}

// Align 将参考资料裁剪到所选范围，失败时原样返回
func (uc *AnalysisUseCase) Align(ctx context.Context, raw string, regions []string, dr *model.DateRange) string {
	return uc.context.Align(ctx, raw, regions, dr)
}

// FetchContext 拉取限定范围的背景简报
func (uc *AnalysisUseCase) FetchContext(ctx context.Context, regions []string, dr *model.DateRange) (*alignment.ScopedContext, error) {
	return uc.context.FetchScoped(ctx, regions, dr)
}

func joinContext(existing, fetched string) string {
	existing, fetched = strings.TrimSpace(existing), strings.TrimSpace(fetched)
	switch {
	case existing == "":
		return fetched
	case fetched == "":
		return existing
	}
	return existing + "\n\n" + fetched
}

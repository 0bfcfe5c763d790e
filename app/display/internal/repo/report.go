package repo

import (
	"context"

	"github.com/iWorld-y/aura/app/aura/pkg/alignment"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/display/internal/domain"
)

// ReportRepo 报告库接口
type ReportRepo interface {
	// ListReports 按筛选条件列出报告，按保存时间倒序
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]model.SavedReport, error)
	// GetReport 根据ID获取报告详情
	GetReport(ctx context.Context, id string) (*model.SavedReport, error)
	// SaveReport 保存新生成的报告
	SaveReport(ctx context.Context, result *model.AnalysisResult) (*model.SavedReport, error)
	// DeleteReport 删除报告，不存在时不报错
	DeleteReport(ctx context.Context, id string) error
	// ClearReports 清空报告库
	ClearReports(ctx context.Context) error
}

// Synthesizer 合成引擎
type Synthesizer interface {
	Synthesize(ctx context.Context, in engine.Input, scope engine.Scope) (*model.AnalysisResult, error)
	DeepDive(ctx context.Context, topic string, regions []string, scope engine.Scope) (*model.DeepDiveResult, error)
}

// ContextProvider 背景资料服务
type ContextProvider interface {
	Align(ctx context.Context, raw string, regions []string, dr *model.DateRange) string
	FetchScoped(ctx context.Context, regions []string, dr *model.DateRange) (*alignment.ScopedContext, error)
}

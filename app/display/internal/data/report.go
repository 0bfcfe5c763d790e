package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/aura/app/aura/pkg/archive"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/display/internal/domain"
	"github.com/iWorld-y/aura/app/display/internal/repo"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportRepo(data *Data, logger log.Logger) repo.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reportRepo) ListReports(ctx context.Context, filter domain.ReportFilter) ([]model.SavedReport, error) {
	return archive.Query(r.data.archive.LoadAll(ctx), filter.Query, filter.Start, filter.End), nil
}

func (r *reportRepo) GetReport(ctx context.Context, id string) (*model.SavedReport, error) {
	report, ok := r.data.archive.Get(ctx, id)
	if !ok {
		return nil, errors.NotFound("REPORT_NOT_FOUND", "report not found")
	}
	return report, nil
}

func (r *reportRepo) SaveReport(ctx context.Context, result *model.AnalysisResult) (*model.SavedReport, error) {
	saved, err := r.data.archive.Append(ctx, result)
	if err != nil {
		return nil, err
	}
	r.log.Infof("archived report %s", saved.ReportID)
	return saved, nil
}

func (r *reportRepo) DeleteReport(ctx context.Context, id string) error {
	return r.data.archive.Remove(ctx, id)
}

func (r *reportRepo) ClearReports(ctx context.Context) error {
	return r.data.archive.Clear(ctx)
}

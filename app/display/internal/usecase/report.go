package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/display/internal/domain"
	"github.com/iWorld-y/aura/app/display/internal/repo"
)

// ReportUseCase 报告库业务逻辑
type ReportUseCase struct {
	repo repo.ReportRepo
	log  *log.Helper
}

// NewReportUseCase 创建报告库业务逻辑实例
func NewReportUseCase(repo repo.ReportRepo, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 按条件列出报告
func (uc *ReportUseCase) List(ctx context.Context, filter domain.ReportFilter) ([]model.SavedReport, error) {
	return uc.repo.ListReports(ctx, filter)
}

// GetByID 根据ID获取报告详情
func (uc *ReportUseCase) GetByID(ctx context.Context, id string) (*model.SavedReport, error) {
	return uc.repo.GetReport(ctx, id)
}

// Delete 删除单份报告
func (uc *ReportUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteReport(ctx, id)
}

// Clear 清空报告库
func (uc *ReportUseCase) Clear(ctx context.Context) error {
	uc.log.WithContext(ctx).Info("clearing report archive")
	return uc.repo.ClearReports(ctx)
}

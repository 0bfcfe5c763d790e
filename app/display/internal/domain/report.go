package domain

import (
	"time"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

// DefaultSession 请求未指定会话时使用的 key
const DefaultSession = "default"

// ReportFilter 报告库筛选条件，零值表示不过滤
type ReportFilter struct {
	Query string
	Start *time.Time
	End   *time.Time
}

// SynthesisRequest 一次合成请求
type SynthesisRequest struct {
	Session       string
	FreeText      string
	Topic         string
	Regions       []string
	DateRange     *model.DateRange
	ReferenceText string
	// FetchContext 先从公开来源拉取限定范围的背景资料
	FetchContext bool
	// Align 将参考资料裁剪到所选地区与时间窗口
	Align bool
}

// DeepDiveRequest 跨地区专题研究请求
type DeepDiveRequest struct {
	Topic     string
	Regions   []string
	DateRange *model.DateRange
}

package archive

import (
	"strings"
	"time"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

// ParseDay 解析 YYYY-MM-DD（UTC 当天零点）
func ParseDay(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}

// EndOfDay 返回 t 所在日期的 23:59:59.999
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Query 按标题/摘要的不区分大小写子串与闭区间日期过滤，不修改输入，保持原有顺序
func Query(reports []model.SavedReport, text string, start, end *time.Time) []model.SavedReport {
	needle := strings.ToLower(text)

	var upper time.Time
	if end != nil {
		upper = EndOfDay(*end)
	}

	out := make([]model.SavedReport, 0, len(reports))
	for _, r := range reports {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Summary), needle) {
			continue
		}
		if start != nil || end != nil {
			ts := r.Time()
			if ts.IsZero() {
				continue
			}
			if start != nil && ts.Before(*start) {
				continue
			}
			if end != nil && ts.After(upper) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

package model

import (
	"strings"
	"time"
)

// ParseBounds 解析日期窗口，任一端无法解析或 start 晚于 end 时 ok 为 false
func (d *DateRange) ParseBounds() (start, end time.Time, ok bool) {
	if d == nil {
		return time.Time{}, time.Time{}, false
	}
	start, err := parseDate(d.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = parseDate(d.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// NormalizeDateRange 返回规范化后的窗口；无效窗口视为未提供
func NormalizeDateRange(d *DateRange) *DateRange {
	start, end, ok := d.ParseBounds()
	if !ok {
		return nil
	}
	return &DateRange{Start: start.Format(time.DateOnly), End: end.Format(time.DateOnly)}
}

// 同时接受 YYYY-MM-DD 和完整的 ISO-8601 时间
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}

// CleanRegions 去掉空白项和重复项，保持原有顺序
func CleanRegions(regions []string) []string {
	out := make([]string, 0, len(regions))
	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

package service

import (
	"strings"
	"time"
)

// 按顺序尝试的日期格式，不带时区的按 UTC 解释
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const dateOnly = "2006-01-02"

// ParseDate 解析客户端传入的日期，结果统一转换为 UTC
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseRangeStart 解析筛选区间起点，空串表示不限
func ParseRangeStart(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, invalid("start_date", "invalid date format")
	}
	return &t, nil
}

// ParseRangeEnd 解析筛选区间终点，只有日期时覆盖当天全天
func ParseRangeEnd(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, invalid("end_date", "invalid date format")
	}
	if len(s) == len(dateOnly) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// monthRange 返回某个 UTC 自然月的 [start, end) 区间
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthBounds 某个 UTC 自然月的首尾时刻（均包含）
func MonthBounds(month, year int) (time.Time, time.Time) {
	start, next := monthRange(month, year)
	return start, next.Add(-time.Nanosecond)
}

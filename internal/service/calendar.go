package service

import (
	"time"
)

const dateLayout = "2006-01-02"

// Calendar 在固定时区下计算“自然日”
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar loc 为 nil 时使用 time.Local；now 为 nil 时使用 time.Now
func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

func (c *Calendar) Location() *time.Location { return c.loc }

// Now 当前时间（UTC，用于落库）
func (c *Calendar) Now() time.Time { return c.now().UTC() }

// Today 当前自然日的 [start, end)
func (c *Calendar) Today() (time.Time, time.Time) { return c.dayOf(c.now()) }

// DateOf t 所在自然日，YYYY-MM-DD
func (c *Calendar) DateOf(t time.Time) string { return t.In(c.loc).Format(dateLayout) }

// Window 解析 YYYY-MM-DD 并返回该自然日的 [start, end)
func (c *Calendar) Window(date string) (time.Time, time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("invalid date %q, expected YYYY-MM-DD", date)
	}
	start, end := c.dayOf(d)
	return start, end, nil
}

func (c *Calendar) dayOf(t time.Time) (time.Time, time.Time) {
	t = t.In(c.loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
	// AddDate 处理夏令时切换日（23/25 小时）
	return start, start.AddDate(0, 0, 1)
}

package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const periodLayout = "2006-01"

// Period 按月划分的审计周期
type Period struct {
	Year  int `json:"year" gorm:"column:year"`
	Month int `json:"month" gorm:"column:month"`
}

// ParsePeriod 解析 YYYY-MM 格式
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, strings.TrimSpace(s))
	if err != nil {
		return Period{}, errors.Wrapf(err, "周期格式应为 YYYY-MM: %q", s)
	}
	return Period{Year: t.Year(), Month: int(t.Month())}, nil
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Title 展示用标题，如 "May 2024"
func (p Period) Title() string {
	return p.Start().Format("January 2006")
}

// Start 周期第一天零点（本地时区，与 WordPress post_date 一致）
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.Local)
}

// End 下一周期的起点，区间为 [Start, End)
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Pager 报表顶部的上一月/下一月导航
type Pager struct {
	Current  Period  `json:"current"`
	Previous *Period `json:"previous,omitempty"` // 更早的一个周期
	Next     *Period `json:"next,omitempty"`     // 更晚的一个周期
}

// NewPager 根据可用周期（任意顺序）计算相邻周期
// current 不在列表中时按时间顺序取最近的前后周期
func NewPager(periods []Period, current Period) Pager {
	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[j].Before(sorted[i]) })

	pager := Pager{Current: current}
	for i := range sorted {
		p := sorted[i]
		if current.Before(p) {
			pager.Next = &p
			continue
		}
		if p.Before(current) {
			pager.Previous = &p
			break
		}
	}
	return pager
}

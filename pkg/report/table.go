package report

import (
	"io"
	"sort"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/service"
	"teksttv-audit/pkg/worddiff"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableRenderer 在终端输出汇总表
type TableRenderer struct {
	out io.Writer
}

func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out}
}

func (r *TableRenderer) newWriter() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderCounts 输出单个月份各判定的文章数
func (r *TableRenderer) RenderCounts(report *service.Report) {
	t := r.newWriter()
	t.SetTitle(report.Period.Title())
	t.AppendHeader(table.Row{"Classification", "Posts"})
	for _, c := range report.Counts {
		t.AppendRow(table.Row{c.Classification.Label(), c.Total})
	}
	t.AppendFooter(table.Row{"Total", len(report.Items)})
	t.Render()
}

// RenderPeriods 输出可审计的月份
func (r *TableRenderer) RenderPeriods(periods []model.Period) {
	t := r.newWriter()
	t.AppendHeader(table.Row{"Period", "Month", "Report"})
	for _, p := range periods {
		t.AppendRow(table.Row{p.String(), p.Title(), FileName(p)})
	}
	t.Render()
}

// RenderHistory 按月份汇总已保存的快照，每个判定一列
func (r *TableRenderer) RenderHistory(counts []model.PeriodCount) {
	byPeriod := make(map[string]map[worddiff.Classification]int64)
	for _, c := range counts {
		if byPeriod[c.Period] == nil {
			byPeriod[c.Period] = make(map[worddiff.Classification]int64)
		}
		byPeriod[c.Period][c.Classification] += c.Total
	}
	periods := make([]string, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	// YYYY-MM 按字符串倒序即时间倒序
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))

	header := table.Row{"Period"}
	for _, c := range worddiff.Classifications {
		header = append(header, c.Label())
	}
	header = append(header, "Total")

	t := r.newWriter()
	t.AppendHeader(header)
	for _, p := range periods {
		row := table.Row{p}
		var total int64
		for _, c := range worddiff.Classifications {
			row = append(row, byPeriod[p][c])
			total += byPeriod[p][c]
		}
		t.AppendRow(append(row, total))
	}
	t.Render()
}

// RenderAssessment 输出两段文本的判定与对比统计
func (r *TableRenderer) RenderAssessment(a *worddiff.Assessment) {
	t := r.newWriter()
	t.AppendHeader(table.Row{"Classification", "Unchanged", "Deleted", "Inserted"})
	var stats worddiff.Stats
	if a.Diff != nil {
		stats = a.Diff.Stats()
	}
	t.AppendRow(table.Row{a.Classification.Label(), stats.Unchanged, stats.Deleted, stats.Inserted})
	t.Render()
}

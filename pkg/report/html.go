package report

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/service"
	"teksttv-audit/pkg/worddiff"

	"github.com/pkg/errors"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var badgeClasses = map[worddiff.Classification]string{
	worddiff.FullyHuman:         "bg-blue-100 text-blue-800",
	worddiff.AIUneditedVerbatim: "bg-red-100 text-red-800",
	worddiff.AIEdited:           "bg-yellow-100 text-yellow-800",
}

// nl2br 在换行前插入 <br />，\r\n 视为一个换行
var nl2br = strings.NewReplacer(
	"\r\n", "<br />\r\n",
	"\n\r", "<br />\n\r",
	"\n", "<br />\n",
	"\r", "<br />\r",
)

// FileName 报表文件名，分页链接指向同目录下的其他月份
func FileName(p model.Period) string {
	return fmt.Sprintf("tekst-tv-audit-%04d-%02d.html", p.Year, p.Month)
}

type dashboardView struct {
	Title       string
	PreviousURL string
	NextURL     string
	Stats       []statView
	Cards       []cardView
}

type statView struct {
	Total int
	Label string
}

type cardView struct {
	Title      string
	Date       string
	Author     string
	LastEditor string
	Label      string
	BadgeClass string
	Edited     bool
	Content    template.HTML
	Before     template.HTML
	After      template.HTML
}

// HTMLRenderer 生成单个月份的静态仪表盘页面
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/dashboard.html.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "解析报表模板失败")
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render 将报表写入 w
func (r *HTMLRenderer) Render(w io.Writer, report *service.Report) error {
	if err := r.tmpl.Execute(w, newDashboardView(report)); err != nil {
		return errors.Wrapf(err, "渲染 %s 报表失败", report.Period)
	}
	return nil
}

// WriteFile 写入 dir/tekst-tv-audit-YYYY-MM.html 并返回路径
func (r *HTMLRenderer) WriteFile(dir string, report *service.Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "创建输出目录失败: %s", dir)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, report); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(report.Period))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", errors.Wrapf(err, "写入报表失败: %s", path)
	}
	return path, nil
}

func newDashboardView(report *service.Report) dashboardView {
	view := dashboardView{
		Title: report.Period.Title(),
		Stats: make([]statView, 0, len(report.Counts)),
		Cards: make([]cardView, 0, len(report.Items)),
	}
	if report.Pager.Previous != nil {
		view.PreviousURL = FileName(*report.Pager.Previous)
	}
	if report.Pager.Next != nil {
		view.NextURL = FileName(*report.Pager.Next)
	}

	for _, c := range report.Counts {
		view.Stats = append(view.Stats, statView{Total: c.Total, Label: c.Classification.Label()})
	}

	formatter := worddiff.HTMLFormatter
	for i := range report.Items {
		item := &report.Items[i]
		card := cardView{
			Title:      item.Title,
			Date:       item.PostDate.Format("2006-01-02"),
			Author:     item.Author,
			LastEditor: item.LastEditor,
			Label:      item.Classification.Label(),
			BadgeClass: badgeClasses[item.Classification],
		}
		if diff := item.Diff(); diff != nil {
			before, after := diff.Render(formatter)
			card.Edited = true
			card.Before = template.HTML(before)
			card.After = template.HTML(after)
		} else {
			card.Content = template.HTML(nl2br.Replace(html.EscapeString(item.HumanText)))
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}

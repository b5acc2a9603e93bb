package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/report"
	"teksttv-audit/pkg/service"
	"teksttv-audit/pkg/worddiff"
)

func sampleReport() *service.Report {
	may := model.Period{Year: 2024, Month: 5}
	apr := model.Period{Year: 2024, Month: 4}
	date := time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)

	diff := worddiff.Diff("de kat zit op de mat", "de hond zit op de mat")
	return &service.Report{
		RunID:  "run",
		Period: may,
		Pager:  model.Pager{Current: may, Previous: &apr},
		Counts: []service.Count{
			{Classification: worddiff.FullyHuman, Total: 1},
			{Classification: worddiff.AIUneditedVerbatim, Total: 0},
			{Classification: worddiff.AIEdited, Total: 1},
		},
		Items: []model.AuditRecord{
			{
				PostID: 2, Title: "Dieren <update>", PostDate: date, Author: "Jan", LastEditor: "Piet",
				Classification: worddiff.AIEdited,
				Before:         diff.Before, After: diff.After,
			},
			{
				PostID: 1, Title: "Weer", PostDate: date, Author: "Jan", LastEditor: model.UnknownEditor,
				Classification: worddiff.FullyHuman,
				HumanText:      "Zonnig & warm\nmorgen regen",
			},
		},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "tekst-tv-audit-2024-05.html", report.FileName(model.Period{Year: 2024, Month: 5}))
}

func TestHTMLRenderer_Render(t *testing.T) {
	r, err := report.NewHTMLRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "<span class=\"text-center\">May 2024</span>")
	assert.Contains(t, out, `href="tekst-tv-audit-2024-04.html"`)
	assert.NotContains(t, out, "Next Month")

	assert.Contains(t, out, "Fully Human Written")
	assert.Contains(t, out, "AI Written, Not Edited")
	assert.Contains(t, out, "bg-yellow-100 text-yellow-800")
	assert.Contains(t, out, "bg-blue-100 text-blue-800")

	assert.Contains(t, out, "Dieren &lt;update&gt;")
	assert.Contains(t, out, "Published on: 2024-05-14")
	assert.Contains(t, out, "Last edit: Unknown")

	assert.Contains(t, out, "<del class='text-red-500 line-through'>kat</del>")
	assert.Contains(t, out, "<ins class='text-green-600 bg-green-100'>hond</ins>")
	assert.Contains(t, out, "Zonnig &amp; warm<br />\nmorgen regen")
}

func TestHTMLRenderer_WriteFile(t *testing.T) {
	r, err := report.NewHTMLRenderer()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := r.WriteFile(dir, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tekst-tv-audit-2024-05.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestTableRenderer_RenderCounts(t *testing.T) {
	var buf bytes.Buffer
	report.NewTableRenderer(&buf).RenderCounts(sampleReport())
	out := buf.String()

	assert.Contains(t, out, "May 2024")
	assert.Contains(t, out, "AI Written, Edited")
	assert.Contains(t, out, "Fully Human Written")
}

func TestTableRenderer_RenderPeriods(t *testing.T) {
	var buf bytes.Buffer
	report.NewTableRenderer(&buf).RenderPeriods([]model.Period{{Year: 2024, Month: 6}, {Year: 2024, Month: 5}})
	out := buf.String()

	assert.Contains(t, out, "2024-06")
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "tekst-tv-audit-2024-05.html")
}

func TestTableRenderer_RenderHistory(t *testing.T) {
	var buf bytes.Buffer
	report.NewTableRenderer(&buf).RenderHistory([]model.PeriodCount{
		{Period: "2024-04", Classification: worddiff.FullyHuman, Total: 2},
		{Period: "2024-05", Classification: worddiff.AIEdited, Total: 3},
		{Period: "2024-05", Classification: worddiff.FullyHuman, Total: 4},
	})
	out := buf.String()

	may := bytes.Index(buf.Bytes(), []byte("2024-05"))
	apr := bytes.Index(buf.Bytes(), []byte("2024-04"))
	require.NotEqual(t, -1, may)
	require.NotEqual(t, -1, apr)
	assert.Less(t, may, apr)
	assert.Contains(t, out, "7")
}

func TestTableRenderer_RenderAssessment(t *testing.T) {
	var buf bytes.Buffer
	report.NewTableRenderer(&buf).RenderAssessment(worddiff.Assess("er is brand", "er is grote brand"))
	assert.Contains(t, buf.String(), "AI Written, Edited")
}

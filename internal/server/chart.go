package server

import (
	"bytes"
	"errors"
	"net/http"
	"regexp"

	"github.com/coscms/tables"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/vedaangh/microblog/pkg/barchart"
	"github.com/vedaangh/microblog/pkg/chartutil"
	"github.com/vedaangh/microblog/pkg/dataset"
	"github.com/vedaangh/microblog/pkg/storage"
)

// handleChart renders the interactive echarts version of a dataset with a
// table of its values underneath.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, `name`)
	d, err := s.em.Get(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			render.Render(w, r, ErrNotFound(err))
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	var bar *charts.Bar
	var table string
	switch d.Kind {
	case dataset.KindGrouped:
		l := d.Grouped()
		bar = chartutil.NewGroupedBar(nil, l, chartutil.Initialization(d.Title, ``, chartutil.WithTheme(s.cfg.Theme)))
		table = groupedTable(l)
	default:
		l := d.Horizontal()
		bar = chartutil.NewHorizontalBar(nil, l, chartutil.Initialization(d.Title, ``, chartutil.WithTheme(s.cfg.Theme)))
		table = horizontalTable(l)
	}

	page := components.NewPage()
	page.PageTitle = d.Title
	page.AddCharts(bar)
	buf := bytes.NewBuffer(nil)
	if err := page.Render(buf); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	w.Header().Set(`Content-Type`, `text/html; charset=utf-8`)
	w.Write(bodyAndLastDiv.ReplaceAll(buf.Bytes(), []byte(tableStyle+`<div class="container"><div class="item" style="width:900px">`+table+`</div></div> </div></body></html>`)))
}

func horizontalTable(l barchart.HorizontalLayout) string {
	table := tables.New()
	table.SetCaptionContent(l.Title)
	table.Head.AddRow(new(tables.Row).AddCell(tables.NewCell(`Label`), tables.NewCell(`Value`)))
	for _, bar := range l.Bars {
		table.Body.AddRow(new(tables.Row).AddCell(tables.NewCell(bar.Label), tables.NewCell(bar.Display)))
	}
	return string(table.Render())
}

func groupedTable(l barchart.GroupedLayout) string {
	table := tables.New()
	table.SetCaptionContent(l.Title)
	table.Head.AddRow(new(tables.Row).AddCell(tables.NewCell(`Label`), tables.NewCell(l.Legend[0].Name), tables.NewCell(l.Legend[1].Name)))
	for _, row := range l.Rows {
		table.Body.AddRow(new(tables.Row).AddCell(tables.NewCell(row.Label), tables.NewCell(row.Bars[0].Display), tables.NewCell(row.Bars[1].Display)))
	}
	return string(table.Render())
}

var bodyAndLastDiv = regexp.MustCompile(`</div>\s*</body>\s*</html>\s*$`)
var tableStyle = `<style>
table {border-collapse: collapse;background-color: #f2f2f2;width: 100%;margin: auto;box-shadow: 1px 1px 5px rgba(0,0,0,0.3);}
table caption{color: #516b91; font-weight: bold}
th, td {border: 1px solid #ccc;text-align: left;padding: 8px;}
th {background-color: #516b91;color: white;}
tr:nth-child(odd) {background-color: #f2f2f2;}
tr:nth-child(even) {background-color: #fff;}
</style>`

package barchart

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"
	"strconv"
)

//go:embed chart.html
var chartTemplate string

var tmpl = template.Must(template.New(`chart`).Funcs(template.FuncMap{
	`pct`: func(v float64) template.CSS {
		return template.CSS(strconv.FormatFloat(v, 'f', 2, 64) + `%`)
	},
	`right`: func(v float64) template.CSS {
		return template.CSS(strconv.FormatFloat(100-v, 'f', 2, 64) + `%`)
	},
	`add`: func(a, b float64) float64 {
		return a + b
	},
	`color`: func(c string) template.CSS {
		return template.CSS(c)
	},
}).Parse(chartTemplate))

// RenderHTML writes the nested box layout of a HorizontalLayout or a
// GroupedLayout.
func RenderHTML(w io.Writer, layout any) error {
	switch v := layout.(type) {
	case HorizontalLayout:
		return tmpl.ExecuteTemplate(w, `horizontal`, v)
	case *HorizontalLayout:
		return tmpl.ExecuteTemplate(w, `horizontal`, v)
	case GroupedLayout:
		return tmpl.ExecuteTemplate(w, `grouped`, v)
	case *GroupedLayout:
		return tmpl.ExecuteTemplate(w, `grouped`, v)
	}
	return ErrUnknownLayout
}

// HTML is RenderHTML into a template.HTML value for page templates.
func HTML(layout any) (template.HTML, error) {
	buf := bytes.NewBuffer(nil)
	if err := RenderHTML(buf, layout); err != nil {
		return ``, err
	}
	return template.HTML(buf.String()), nil
}

package chartutil

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// https://github.com/go-echarts/examples

// DefaultTheme is applied by Initialization unless WithTheme overrides it.
const DefaultTheme = types.ThemeWesteros

func Title(title, subtitle string, options ...func(*opts.Title)) charts.GlobalOpts {
	option := opts.Title{
		Title:    title,
		Subtitle: subtitle,
	}
	for _, o := range options {
		o(&option)
	}
	return charts.WithTitleOpts(option)
}

func Initialization(title, subtitle string, options ...func(*opts.Initialization)) charts.GlobalOpts {
	option := opts.Initialization{Theme: DefaultTheme, PageTitle: title}
	for _, o := range options {
		o(&option)
	}
	return charts.WithInitializationOpts(option)
}

func WithTheme(theme string) func(*opts.Initialization) {
	return func(o *opts.Initialization) {
		if len(theme) > 0 {
			o.Theme = theme
		}
	}
}

// ValueAxis pins the value axis before XYReversal turns it horizontal.
func ValueAxis(min, max float64) charts.GlobalOpts {
	return charts.WithYAxisOpts(opts.YAxis{
		Type: `value`,
		Min:  min,
		Max:  max,
	})
}

func ItemColor(color string) func(*opts.BarData) {
	return func(bd *opts.BarData) {
		bd.ItemStyle = &opts.ItemStyle{Color: color}
	}
}

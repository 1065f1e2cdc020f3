package chartutil

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vedaangh/microblog/pkg/barchart"
)

func NewBar(w io.Writer, options []charts.GlobalOpts, headTitles []string, addSeries func(*charts.Bar)) *charts.Bar {
	bar := charts.NewBar()
	options = append([]charts.GlobalOpts{Initialization(``, ``)}, options...)
	bar.SetGlobalOptions(options...)
	bar.SetXAxis(headTitles)
	if addSeries != nil {
		addSeries(bar)
	}
	if w != nil {
		bar.Render(w)
	}
	return bar
}

// NewHorizontalBar draws a diverging bar chart with the value axis pinned to
// the layout's domain. echarts stacks categories bottom-up, so rows are fed
// in reverse to keep the first row on top.
func NewHorizontalBar(w io.Writer, l barchart.HorizontalLayout, options ...charts.GlobalOpts) *charts.Bar {
	size := len(l.Bars)
	headTitles := make([]string, size)
	datasMap := NewBarDatas()
	name := l.Title
	if len(name) == 0 {
		name = `value`
	}
	for i, item := range l.Bars {
		index := size - 1 - i
		headTitles[index] = item.Label
		datasMap.SetDatasMap(index, name, item.Value, size, ItemColor(item.Color), func(bd *opts.BarData) { bd.Name = item.Display })
	}
	options = append([]charts.GlobalOpts{
		Title(l.Title, ``),
		ValueAxis(l.Domain.Min, l.Domain.Max),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}, options...)
	bar := NewBar(nil, options, headTitles, datasMap.AddSeries)
	bar.XYReversal()
	if w != nil {
		bar.Render(w)
	}
	return bar
}

// NewGroupedBar draws both series of a grouped layout on a symmetric axis.
func NewGroupedBar(w io.Writer, l barchart.GroupedLayout, options ...charts.GlobalOpts) *charts.Bar {
	size := len(l.Rows)
	headTitles := make([]string, size)
	datasMap := NewBarDatas()
	for s, legend := range l.Legend {
		datasMap.SetSeriesColor(legend.Name, legend.Color)
		for i, row := range l.Rows {
			index := size - 1 - i
			headTitles[index] = row.Label
			datasMap.SetDatasMap(index, legend.Name, row.Bars[s].Value, size, func(bd *opts.BarData) { bd.Name = row.Bars[s].Display })
		}
	}
	options = append([]charts.GlobalOpts{
		Title(l.Title, ``),
		ValueAxis(-l.DomainMax, l.DomainMax),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}, options...)
	bar := NewBar(nil, options, headTitles, datasMap.AddSeries)
	bar.XYReversal()
	if w != nil {
		bar.Render(w)
	}
	return bar
}

func NewBarDatas() *BarDatasMap {
	return &BarDatasMap{
		m:      map[string][]opts.BarData{},
		colors: map[string]string{},
	}
}

type BarDatasMap struct {
	m      map[string][]opts.BarData
	r      []string
	colors map[string]string
}

func (b *BarDatasMap) SetSeriesColor(key string, color string) {
	b.colors[key] = color
}

func (b *BarDatasMap) SetDatasMap(index int, key string, value interface{}, size int, options ...func(*opts.BarData)) {
	datas, ok := b.m[key]
	if !ok {
		datas = make([]opts.BarData, size)
		b.m[key] = datas
		b.r = append(b.r, key)
	}
	datas[index] = opts.BarData{
		Name:  key,
		Value: value,
	}
	for _, o := range options {
		o(&datas[index])
	}
}

func (b BarDatasMap) Keys() []string {
	return b.r
}

func (b BarDatasMap) AddSeries(bar *charts.Bar) {
	for _, key := range b.r {
		val := b.m[key]
		if color, ok := b.colors[key]; ok {
			bar.AddSeries(key, val, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
		} else {
			bar.AddSeries(key, val)
		}
	}
}

package barchart

import "math"

// Headroom is the visual margin added above the largest magnitude.
const Headroom = 1.1

type SeriesBar struct {
	Series   int     `json:"series"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Positive bool    `json:"positive"`
	Color    string  `json:"color"`
}

type GroupedRow struct {
	Label string       `json:"label"`
	Bars  [2]SeriesBar `json:"bars"`
}

type LegendItem struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type GroupedLayout struct {
	Title     string        `json:"title,omitempty"`
	Unit      string        `json:"unit,omitempty"`
	DomainMax float64       `json:"domainMax"`
	Legend    [2]LegendItem `json:"legend"`
	Rows      []GroupedRow  `json:"rows"`
}

// Domain returns the symmetric domain shared by both series.
func (l GroupedLayout) Domain() Domain {
	return Domain{Min: -l.DomainMax, Max: l.DomainMax}
}

// DomainMax is ceil(1.1 * max |value|) over both series of every row.
func DomainMax(data []GroupedDataPoint) float64 {
	var maxVal float64
	for _, point := range data {
		maxVal = max(maxVal, math.Abs(point.SeriesA), math.Abs(point.SeriesB))
	}
	return math.Ceil(maxVal * Headroom)
}

// Grouped lays out two competing bars per row around a shared midpoint.
// Empty or all-zero data gives DomainMax 0 and non-finite widths.
func Grouped(data []GroupedDataPoint, options ...Option) GroupedLayout {
	o := makeOptions(options)
	domainMax := DomainMax(data)
	layout := GroupedLayout{
		Title:     o.Title,
		Unit:      o.Unit,
		DomainMax: domainMax,
		Rows:      make([]GroupedRow, len(data)),
	}
	for s := range layout.Legend {
		layout.Legend[s] = LegendItem{Name: o.SeriesNames[s], Color: SeriesColors[s]}
	}
	for i, point := range data {
		row := GroupedRow{Label: point.Label}
		for s, value := range [2]float64{point.SeriesA, point.SeriesB} {
			width := math.Abs(value) / domainMax * 50
			bar := SeriesBar{
				Series:   s,
				Value:    value,
				Display:  FormatValue(value, o.Unit),
				Left:     50,
				Width:    width,
				Positive: value >= 0,
				Color:    SeriesColors[s],
			}
			if value < 0 {
				bar.Left = 50 - width
			}
			row.Bars[s] = bar
		}
		layout.Rows[i] = row
	}
	return layout
}

func (l GroupedLayout) Finite() bool {
	if !finite(l.DomainMax) {
		return false
	}
	for _, row := range l.Rows {
		for _, bar := range row.Bars {
			if !finite(bar.Left, bar.Width) {
				return false
			}
		}
	}
	return true
}

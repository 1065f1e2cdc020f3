package barchart

import "math"

// LabelAlign tells which side of the anchor the value label is drawn on.
type LabelAlign string

const (
	AlignStart LabelAlign = `start` // label reads rightwards from the anchor
	AlignEnd   LabelAlign = `end`   // label is right-aligned, ending at the anchor
)

type HorizontalBar struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Positive bool    `json:"positive"`
	Color    string  `json:"color"`

	// LabelAnchor is the percentage position of the bar's outer edge.
	LabelAnchor float64    `json:"labelAnchor"`
	LabelAlign  LabelAlign `json:"labelAlign"`
}

type HorizontalLayout struct {
	Title      string          `json:"title,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	Domain     Domain          `json:"domain"`
	Range      float64         `json:"range"`
	ZeroOffset float64         `json:"zeroOffset"`
	Bars       []HorizontalBar `json:"bars"`
}

// Horizontal lays out one diverging bar per data point, in input order.
// Values outside the domain overflow the track and a zero-width domain
// yields non-finite percentages; neither is reported as an error.
func Horizontal(data []DataPoint, options ...Option) HorizontalLayout {
	o := makeOptions(options)
	rng := o.Domain.Max - o.Domain.Min
	zeroOffset := (0 - o.Domain.Min) / rng * 100
	layout := HorizontalLayout{
		Title:      o.Title,
		Unit:       o.Unit,
		Domain:     o.Domain,
		Range:      rng,
		ZeroOffset: zeroOffset,
		Bars:       make([]HorizontalBar, len(data)),
	}
	for i, point := range data {
		width := math.Abs(point.Value) / rng * 100
		bar := HorizontalBar{
			Label:    point.Label,
			Value:    point.Value,
			Display:  FormatValue(point.Value, o.Unit),
			Width:    width,
			Positive: point.Value > 0,
		}
		if point.Value < 0 {
			bar.Left = zeroOffset - width
			bar.LabelAnchor = bar.Left
			bar.LabelAlign = AlignEnd
		} else {
			bar.Left = zeroOffset
			bar.LabelAnchor = bar.Left + width
			bar.LabelAlign = AlignStart
		}
		if bar.Positive {
			bar.Color = PositiveColor
		} else {
			bar.Color = NegativeColor
		}
		layout.Bars[i] = bar
	}
	return layout
}

// Finite reports whether every computed percentage is a real number.
func (l HorizontalLayout) Finite() bool {
	if !finite(l.Range, l.ZeroOffset) {
		return false
	}
	for _, bar := range l.Bars {
		if !finite(bar.Left, bar.Width, bar.LabelAnchor) {
			return false
		}
	}
	return true
}

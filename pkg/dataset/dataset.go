package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/webx-top/com"

	"github.com/vedaangh/microblog/pkg/barchart"
)

type Kind string

const (
	KindHorizontal Kind = `horizontal`
	KindGrouped    Kind = `grouped`
)

var (
	ErrInvalidValue = errors.New(`invalid value`)
	ErrInvalidKind  = errors.New(`invalid chart kind`)
)

// Dataset is a named, ordered table of chart rows.
type Dataset struct {
	Name        string           `json:"name" yaml:"name"`
	Kind        Kind             `json:"kind" yaml:"kind"`
	Title       string           `json:"title,omitempty" yaml:"title,omitempty"`
	Unit        string           `json:"unit,omitempty" yaml:"unit,omitempty"`
	Domain      *barchart.Domain `json:"domain,omitempty" yaml:"domain,omitempty"` // nil uses barchart.DefaultDomain
	SeriesNames []string         `json:"seriesNames,omitempty" yaml:"series,omitempty"`
	Rows        []Row            `json:"rows" yaml:"rows"`
}

// Row holds one value for horizontal charts and two for grouped charts.
type Row struct {
	Label  string    `json:"label" yaml:"label"`
	Values []float64 `json:"values" yaml:"values"`
}

// ParseValue accepts plain numbers and a trailing percent sign ("12.5%").
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, `%`)
	s = strings.ReplaceAll(s, `,`, ``)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf(`%w: %q`, ErrInvalidValue, s)
	}
	return v, nil
}

// MakeRow builds a row from loosely typed values (numbers or strings).
func MakeRow(label string, values ...any) (Row, error) {
	row := Row{Label: label, Values: make([]float64, len(values))}
	for i, v := range values {
		switch vv := v.(type) {
		case string:
			f, err := ParseValue(vv)
			if err != nil {
				return row, err
			}
			row.Values[i] = f
		default:
			row.Values[i] = com.Float64(vv)
		}
	}
	return row, nil
}

func (r Row) value(i int) float64 {
	if i < len(r.Values) {
		return r.Values[i]
	}
	return 0
}

func (d Dataset) Validate() error {
	switch d.Kind {
	case KindHorizontal, KindGrouped:
	default:
		return fmt.Errorf(`%w: %q (dataset %s)`, ErrInvalidKind, d.Kind, d.Name)
	}
	want := 1
	if d.Kind == KindGrouped {
		want = 2
	}
	for _, row := range d.Rows {
		if len(row.Values) != want {
			return fmt.Errorf(`%w: dataset %s row %q has %d values, want %d`, ErrInvalidValue, d.Name, row.Label, len(row.Values), want)
		}
	}
	return nil
}

func (d Dataset) options() []barchart.Option {
	options := []barchart.Option{barchart.WithTitle(d.Title), barchart.WithUnit(d.Unit)}
	if d.Domain != nil {
		options = append(options, barchart.WithDomain(d.Domain.Min, d.Domain.Max))
	}
	if len(d.SeriesNames) == 2 {
		options = append(options, barchart.WithSeriesNames(d.SeriesNames[0], d.SeriesNames[1]))
	}
	return options
}

func (d Dataset) Points() []barchart.DataPoint {
	points := make([]barchart.DataPoint, len(d.Rows))
	for i, row := range d.Rows {
		points[i] = barchart.DataPoint{Label: row.Label, Value: row.value(0)}
	}
	return points
}

func (d Dataset) GroupedPoints() []barchart.GroupedDataPoint {
	points := make([]barchart.GroupedDataPoint, len(d.Rows))
	for i, row := range d.Rows {
		points[i] = barchart.GroupedDataPoint{Label: row.Label, SeriesA: row.value(0), SeriesB: row.value(1)}
	}
	return points
}

func (d Dataset) Horizontal() barchart.HorizontalLayout {
	return barchart.Horizontal(d.Points(), d.options()...)
}

func (d Dataset) Grouped() barchart.GroupedLayout {
	return barchart.Grouped(d.GroupedPoints(), d.options()...)
}

// Layout returns the layout matching the dataset kind.
func (d Dataset) Layout() any {
	if d.Kind == KindGrouped {
		return d.Grouped()
	}
	return d.Horizontal()
}

// Problems lists rendering hazards the chart itself does not guard against.
func (d Dataset) Problems() []string {
	var problems []string
	switch d.Kind {
	case KindGrouped:
		if barchart.DomainMax(d.GroupedPoints()) == 0 && len(d.Rows) > 0 {
			problems = append(problems, `all values are zero`)
		}
	default:
		domain := barchart.DefaultDomain
		if d.Domain != nil {
			domain = *d.Domain
		}
		if domain.Range() <= 0 {
			problems = append(problems, fmt.Sprintf(`domain [%v, %v] has no width`, domain.Min, domain.Max))
			break
		}
		for _, row := range d.Rows {
			if !domain.Covers(row.Values...) {
				problems = append(problems, fmt.Sprintf(`row %q value %v is outside domain [%v, %v]`, row.Label, row.value(0), domain.Min, domain.Max))
			}
		}
	}
	return problems
}

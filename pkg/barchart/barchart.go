package barchart

import (
	"errors"
	"math"
	"strconv"
)

var (
	PositiveColor = `#516b91`
	NegativeColor = `#d94e5d`
	SeriesColors  = [2]string{`#50a3ba`, `#eac736`}
)

var ErrUnknownLayout = errors.New(`unknown chart layout`)

// DefaultDomain is used by Horizontal when WithDomain is not given.
var DefaultDomain = Domain{Min: -5, Max: 5}

type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type GroupedDataPoint struct {
	Label   string  `json:"label"`
	SeriesA float64 `json:"seriesA"`
	SeriesB float64 `json:"seriesB"`
}

// Domain is the value range mapped onto the 0-100% track width.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (d Domain) Range() float64 {
	return d.Max - d.Min
}

// Covers reports whether every value lies within [Min, Max].
func (d Domain) Covers(values ...float64) bool {
	for _, v := range values {
		if v < d.Min || v > d.Max {
			return false
		}
	}
	return true
}

type Options struct {
	Title       string
	Unit        string
	Domain      Domain
	SeriesNames [2]string
}

type Option func(*Options)

func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

func WithUnit(unit string) Option {
	return func(o *Options) {
		o.Unit = unit
	}
}

func WithDomain(min, max float64) Option {
	return func(o *Options) {
		o.Domain = Domain{Min: min, Max: max}
	}
}

func WithSeriesNames(a, b string) Option {
	return func(o *Options) {
		o.SeriesNames = [2]string{a, b}
	}
}

func makeOptions(options []Option) Options {
	o := Options{
		Domain:      DefaultDomain,
		SeriesNames: [2]string{`Series A`, `Series B`},
	}
	for _, fn := range options {
		fn(&o)
	}
	return o
}

// FormatValue renders a value label: shortest decimal form plus unit.
func FormatValue(value float64, unit string) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + unit
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

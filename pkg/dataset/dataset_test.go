package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedaangh/microblog/pkg/barchart"
)

func TestParseValue(t *testing.T) {
	for in, want := range map[string]float64{
		`12.5`:    12.5,
		` -3.27 `: -3.27,
		`66.7%`:   66.7,
		`1,024`:   1024,
	} {
		got, err := ParseValue(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseValue(`n/a`)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestMakeRow(t *testing.T) {
	row, err := MakeRow(`a`, `10%`, 2, int64(3), 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 2, 3, 1.5}, row.Values)

	_, err = MakeRow(`b`, `x`)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestValidate(t *testing.T) {
	d := Dataset{Name: `h`, Kind: KindHorizontal, Rows: []Row{{`a`, []float64{1}}}}
	assert.NoError(t, d.Validate())
	d.Rows = append(d.Rows, Row{`b`, []float64{1, 2}})
	assert.ErrorIs(t, d.Validate(), ErrInvalidValue)
	d.Kind = `pie`
	assert.ErrorIs(t, d.Validate(), ErrInvalidKind)
}

func TestLayouts(t *testing.T) {
	h := Dataset{
		Name:   `h`,
		Kind:   KindHorizontal,
		Title:  `Scores`,
		Unit:   `%`,
		Domain: &barchart.Domain{Min: 0, Max: 100},
		Rows:   []Row{{`a`, []float64{66.7}}},
	}
	l, ok := h.Layout().(barchart.HorizontalLayout)
	require.True(t, ok)
	assert.Equal(t, `Scores`, l.Title)
	assert.InDelta(t, 66.7, l.Bars[0].Width, 1e-9)
	assert.Equal(t, `66.7%`, l.Bars[0].Display)

	// no domain falls back to the default, an explicit [0, 0] does not
	h.Domain = nil
	assert.Equal(t, barchart.DefaultDomain, h.Horizontal().Domain)
	h.Domain = &barchart.Domain{}
	assert.False(t, h.Horizontal().Finite())
	assert.Len(t, h.Problems(), 1)

	g := Dataset{
		Name:        `g`,
		Kind:        KindGrouped,
		SeriesNames: []string{`zh`, `en`},
		Rows:        []Row{{`a`, []float64{138.2, -150.55}}},
	}
	gl, ok := g.Layout().(barchart.GroupedLayout)
	require.True(t, ok)
	assert.Equal(t, 166.0, gl.DomainMax)
	assert.Equal(t, `en`, gl.Legend[1].Name)
}

func TestProblems(t *testing.T) {
	d := Dataset{Name: `h`, Kind: KindHorizontal, Rows: []Row{{`a`, []float64{7}}, {`b`, []float64{1}}}}
	problems := d.Problems()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], `"a"`)

	d.Domain = &barchart.Domain{Min: 3, Max: 3}
	assert.Len(t, d.Problems(), 1)

	g := Dataset{Name: `g`, Kind: KindGrouped, Rows: []Row{{`z`, []float64{0, 0}}}}
	assert.Equal(t, []string{`all values are zero`}, g.Problems())
}

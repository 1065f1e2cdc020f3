package duckdb

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/admpub/pp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedaangh/microblog/pkg/barchart"
	"github.com/vedaangh/microblog/pkg/dataset"
	"github.com/vedaangh/microblog/pkg/storage"
)

func TestCreateTable(t *testing.T) {
	a, err := newDuckDB(nil)
	assert.NoError(t, err)
	a.Close()
	u, err := url.Parse(`duckdb://./eee`)
	assert.NoError(t, err)
	assert.Equal(t, `.`, u.Host)
	assert.Equal(t, `/eee`, u.Path)
	p, err := storagePath(u)
	assert.NoError(t, err)
	assert.Equal(t, `./eee`, p)
}

func TestStoragePathDirectory(t *testing.T) {
	dir := t.TempDir()
	u, err := url.Parse(`duckdb://?path=` + url.QueryEscape(dir+`/`))
	require.NoError(t, err)
	p, err := storagePath(u)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, `duck.db`), p)
}

var grouped = dataset.Dataset{
	Name:        `refusals`,
	Kind:        dataset.KindGrouped,
	Title:       `Refusal rate`,
	Unit:        `%`,
	SeriesNames: []string{`Chinese`, `English`},
	Rows: []dataset.Row{
		{Label: `model-a`, Values: []float64{138.2, -150.55}},
		{Label: `model-b`, Values: []float64{12, 4}},
	},
}

var horizontal = dataset.Dataset{
	Name:   `scores`,
	Kind:   dataset.KindHorizontal,
	Domain: &barchart.Domain{Min: -5, Max: 5},
	Rows: []dataset.Row{
		{Label: `z`, Values: []float64{-3.27}},
		{Label: `a`, Values: []float64{1}},
		{Label: `m`, Values: []float64{0}},
	},
}

func TestPutGetList(t *testing.T) {
	s, err := storage.New(`duckdb://`)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, storage.Seed(s, grouped, horizontal))

	got, err := s.Get(`scores`)
	require.NoError(t, err)
	assert.Equal(t, horizontal, got)
	pp.Println(got)

	got, err = s.Get(`refusals`)
	require.NoError(t, err)
	assert.Equal(t, grouped, got)

	// replacing keeps the list position
	updated := grouped
	updated.Title = `Refusal rate (updated)`
	updated.Rows = updated.Rows[:1]
	require.NoError(t, s.Put(updated))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, `refusals`, list[0].Name)
	assert.Equal(t, `Refusal rate (updated)`, list[0].Title)
	assert.Len(t, list[0].Rows, 1)
	assert.Equal(t, `scores`, list[1].Name)

	_, err = s.Get(`missing`)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	summaries, err := s.(Storager).Summaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, Summary{Name: `refusals`, Rows: 1, Min: -150.55, Max: 138.2}, summaries[0])
	assert.Equal(t, Summary{Name: `scores`, Rows: 3, Min: -3.27, Max: 1}, summaries[1])
}

func TestSeedDropsStale(t *testing.T) {
	s, err := storage.New(`duckdb://`)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, storage.Seed(s, grouped, horizontal))
	updated := horizontal
	updated.Title = `Scores (updated)`
	extra := dataset.Dataset{Name: `extra`, Kind: dataset.KindHorizontal, Rows: []dataset.Row{{Label: `x`, Values: []float64{1}}}}
	require.NoError(t, storage.Seed(s, updated, extra))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, `scores`, list[0].Name)
	assert.Equal(t, `Scores (updated)`, list[0].Title)
	assert.Equal(t, `extra`, list[1].Name)
	assert.Nil(t, list[1].Domain)

	_, err = s.Get(`refusals`)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	summaries, err := s.(Storager).Summaries()
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	// a put after the replace appends behind the seeded datasets
	require.NoError(t, s.Put(grouped))
	list, err = s.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, `refusals`, list[2].Name)
}

package duckdb

import (
	"database/sql"
	"net/url"
	"os"
	"path/filepath"

	"github.com/webx-top/com"

	"github.com/vedaangh/microblog/pkg/barchart"
	"github.com/vedaangh/microblog/pkg/dataset"
)

// storagePath resolves duckdb://host/path, duckdb:///abs/path and
// duckdb://?path=... into a database file. A trailing separator or an
// existing directory gets duck.db appended. Empty means in-memory.
func storagePath(settings *url.URL) (string, error) {
	if settings == nil {
		return ``, nil
	}
	var storagePath string
	if len(settings.Path) > 0 {
		var err error
		storagePath, err = url.PathUnescape(settings.Path)
		if err != nil {
			return ``, err
		}
		storagePath = settings.Host + storagePath
	} else if len(settings.Host) > 0 {
		storagePath = settings.Host
	} else {
		storagePath = settings.Query().Get(`path`)
	}
	if len(storagePath) > 0 {
		switch storagePath[len(storagePath)-1] {
		case '/', '\\':
			if err := os.MkdirAll(storagePath, 0760); err != nil {
				return ``, err
			}
			storagePath = filepath.Join(storagePath, `duck.db`)
		default:
			if com.IsDir(storagePath) {
				storagePath = filepath.Join(storagePath, `duck.db`)
			}
		}
	}
	return storagePath, nil
}

type datasetRecord struct {
	Name      string          `db:"name"`
	Kind      string          `db:"kind"`
	Title     string          `db:"title"`
	Unit      string          `db:"unit"`
	DomainMin sql.NullFloat64 `db:"domain_min"`
	DomainMax sql.NullFloat64 `db:"domain_max"`
	SeriesA   sql.NullString  `db:"series_a"`
	SeriesB   sql.NullString  `db:"series_b"`
	Position  int64           `db:"position"`
}

type rowRecord struct {
	Dataset string          `db:"dataset"`
	Ordinal int64           `db:"ordinal"`
	Label   string          `db:"label"`
	Value1  sql.NullFloat64 `db:"value1"`
	Value2  sql.NullFloat64 `db:"value2"`
}

func toRecord(d dataset.Dataset) datasetRecord {
	r := datasetRecord{
		Name:  d.Name,
		Kind:  string(d.Kind),
		Title: d.Title,
		Unit:  d.Unit,
	}
	if d.Domain != nil {
		r.DomainMin = sql.NullFloat64{Float64: d.Domain.Min, Valid: true}
		r.DomainMax = sql.NullFloat64{Float64: d.Domain.Max, Valid: true}
	}
	if len(d.SeriesNames) == 2 {
		r.SeriesA = sql.NullString{String: d.SeriesNames[0], Valid: true}
		r.SeriesB = sql.NullString{String: d.SeriesNames[1], Valid: true}
	}
	return r
}

func (r datasetRecord) toDataset(rows []rowRecord) dataset.Dataset {
	d := dataset.Dataset{
		Name:  r.Name,
		Kind:  dataset.Kind(r.Kind),
		Title: r.Title,
		Unit:  r.Unit,
		Rows:  make([]dataset.Row, 0, len(rows)),
	}
	if r.DomainMin.Valid && r.DomainMax.Valid {
		d.Domain = &barchart.Domain{Min: r.DomainMin.Float64, Max: r.DomainMax.Float64}
	}
	if r.SeriesA.Valid && r.SeriesB.Valid {
		d.SeriesNames = []string{r.SeriesA.String, r.SeriesB.String}
	}
	for _, row := range rows {
		values := make([]float64, 0, 2)
		if row.Value1.Valid {
			values = append(values, row.Value1.Float64)
		}
		if row.Value2.Valid {
			values = append(values, row.Value2.Float64)
		}
		d.Rows = append(d.Rows, dataset.Row{Label: row.Label, Values: values})
	}
	return d
}

func toRowRecords(d dataset.Dataset) []rowRecord {
	records := make([]rowRecord, len(d.Rows))
	for i, row := range d.Rows {
		records[i] = rowRecord{Dataset: d.Name, Ordinal: int64(i), Label: row.Label}
		if len(row.Values) > 0 {
			records[i].Value1 = sql.NullFloat64{Float64: row.Values[0], Valid: true}
		}
		if len(row.Values) > 1 {
			records[i].Value2 = sql.NullFloat64{Float64: row.Values[1], Valid: true}
		}
	}
	return records
}

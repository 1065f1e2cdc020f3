package duckdb

import (
	"github.com/vedaangh/microblog/pkg/storage"
)

type Storager interface {
	storage.Storager
	Summaries() ([]Summary, error)
}

// Summary aggregates one dataset's values.
type Summary struct {
	Name string  `db:"name"`
	Rows int64   `db:"row_count"`
	Min  float64 `db:"min_value"`
	Max  float64 `db:"max_value"`
}

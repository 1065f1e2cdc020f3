package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/admpub/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/vedaangh/microblog/pkg/dataset"
	"github.com/vedaangh/microblog/pkg/storage"
)

const (
	datasetTable = `Datasets`
	rowTable     = `DatasetRows`
)

func init() {
	storage.Register(`duckdb`, newDuckDB)
}

// duckdb://
func newDuckDB(settings *url.URL) (storage.Storager, error) {
	storagePath, err := storagePath(settings)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open("duckdb", storagePath)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS ` + datasetTable + ` (
name       VARCHAR PRIMARY KEY,
kind       VARCHAR,
title      VARCHAR,
unit       VARCHAR,
domain_min DOUBLE,
domain_max DOUBLE,
series_a   VARCHAR,
series_b   VARCHAR,
position   BIGINT
);`)
	if err == nil {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS ` + rowTable + ` (
dataset VARCHAR,
ordinal BIGINT,
label   VARCHAR,
value1  DOUBLE,
value2  DOUBLE
);`)
	}
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(storagePath) > 0 {
		log.Debugf("using duckdb dataset storage: %s", storagePath)
	}
	return &storageDuckDB{db: db}, nil
}

type storageDuckDB struct {
	db *sqlx.DB
}

// Put replaces the dataset and its rows, keeping its list position.
func (e *storageDuckDB) Put(d dataset.Dataset) error {
	tx, err := e.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var position sql.NullInt64
	err = tx.Get(&position, `SELECT position FROM `+datasetTable+` WHERE name=?`, d.Name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.Get(&position, `SELECT COALESCE(MAX(position), 0) + 1 FROM `+datasetTable)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	}
	if _, err = tx.Exec(`DELETE FROM `+rowTable+` WHERE dataset=?`, d.Name); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM `+datasetTable+` WHERE name=?`, d.Name); err != nil {
		return err
	}
	if err = insert(tx, d, position.Int64); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace drops every stored dataset and inserts datasets in one
// transaction. A later duplicate name wins and keeps the first position.
func (e *storageDuckDB) Replace(datasets ...dataset.Dataset) error {
	tx, err := e.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM ` + rowTable); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM ` + datasetTable); err != nil {
		return err
	}
	order := make([]string, 0, len(datasets))
	latest := make(map[string]dataset.Dataset, len(datasets))
	for _, d := range datasets {
		if _, ok := latest[d.Name]; !ok {
			order = append(order, d.Name)
		}
		latest[d.Name] = d
	}
	for i, name := range order {
		if err = insert(tx, latest[name], int64(i+1)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insert(tx *sqlx.Tx, d dataset.Dataset, position int64) error {
	record := toRecord(d)
	record.Position = position
	_, err := tx.NamedExec(`INSERT INTO `+datasetTable+` (name, kind, title, unit, domain_min, domain_max, series_a, series_b, position)
VALUES (:name, :kind, :title, :unit, :domain_min, :domain_max, :series_a, :series_b, :position)`, record)
	if err != nil {
		return err
	}
	for _, row := range toRowRecords(d) {
		_, err = tx.NamedExec(`INSERT INTO `+rowTable+` (dataset, ordinal, label, value1, value2)
VALUES (:dataset, :ordinal, :label, :value1, :value2)`, row)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *storageDuckDB) Get(name string) (dataset.Dataset, error) {
	var record datasetRecord
	err := e.db.Get(&record, `SELECT * FROM `+datasetTable+` WHERE name=?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dataset.Dataset{}, fmt.Errorf(`%w: %s`, storage.ErrNotFound, name)
		}
		return dataset.Dataset{}, err
	}
	rows, err := e.rows(name)
	if err != nil {
		return dataset.Dataset{}, err
	}
	return record.toDataset(rows), nil
}

func (e *storageDuckDB) rows(name string) ([]rowRecord, error) {
	var rows []rowRecord
	err := e.db.Select(&rows, `SELECT * FROM `+rowTable+` WHERE dataset=? ORDER BY ordinal ASC`, name)
	return rows, err
}

func (e *storageDuckDB) List() ([]dataset.Dataset, error) {
	var records []datasetRecord
	err := e.db.Select(&records, `SELECT * FROM `+datasetTable+` ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	list := make([]dataset.Dataset, 0, len(records))
	for _, record := range records {
		rows, err := e.rows(record.Name)
		if err != nil {
			return list, err
		}
		list = append(list, record.toDataset(rows))
	}
	return list, nil
}

func (e *storageDuckDB) Summaries() ([]Summary, error) {
	var summaries []Summary
	err := e.db.Select(&summaries, `SELECT d.name AS name,
COUNT(r.label) AS row_count,
COALESCE(MIN(LEAST(r.value1, COALESCE(r.value2, r.value1))), 0) AS min_value,
COALESCE(MAX(GREATEST(r.value1, COALESCE(r.value2, r.value1))), 0) AS max_value
FROM `+datasetTable+` d LEFT JOIN `+rowTable+` r ON r.dataset = d.name
GROUP BY d.name, d.position
ORDER BY d.position ASC`)
	return summaries, err
}

func (e *storageDuckDB) Close() {
	if err := e.db.Close(); err != nil {
		log.Error(err)
	}
}

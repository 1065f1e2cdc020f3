package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vedaangh/microblog/pkg/dataset"
)

type Storager interface {
	Put(dataset.Dataset) error
	// Replace makes datasets the whole content of the storage, in order.
	Replace(datasets ...dataset.Dataset) error
	Get(name string) (dataset.Dataset, error)
	List() ([]dataset.Dataset, error)
	Close()
}

type Constructor func(settings *url.URL) (Storager, error)

var storagers = map[string]Constructor{}

func Register(name string, function Constructor) {
	storagers[name] = function
}

var (
	ErrUnsupported = errors.New(`unsuppored storage`)
	ErrNotFound    = errors.New(`dataset not found`)
)

// New opens the storage named by the scheme of rawURL ("memory://",
// "duckdb://./data/"). A bare name without "://" is accepted as well.
func New(rawURL string) (Storager, error) {
	if len(rawURL) == 0 {
		rawURL = `memory://`
	}
	if !strings.Contains(rawURL, `://`) {
		rawURL += `://`
	}
	settings, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	fn, ok := storagers[settings.Scheme]
	if !ok {
		return nil, fmt.Errorf(`%w: %s`, ErrUnsupported, settings.Scheme)
	}
	return fn(settings)
}

// Seed makes datasets the only stored datasets. Names missing from
// datasets are dropped, so a storage that outlives a content edit does not
// keep serving removed charts.
func Seed(s Storager, datasets ...dataset.Dataset) error {
	if err := s.Replace(datasets...); err != nil {
		return fmt.Errorf(`unable to seed %d datasets: %w`, len(datasets), err)
	}
	return nil
}

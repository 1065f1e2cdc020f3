package storage

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/vedaangh/microblog/pkg/dataset"
)

func init() {
	Register(`memory`, func(_ *url.URL) (Storager, error) { return newMemory(), nil })
}

func newMemory() *storageMemory {
	return &storageMemory{index: map[string]int{}}
}

type storageMemory struct {
	mu       sync.RWMutex
	datasets []dataset.Dataset
	index    map[string]int
}

func (e *storageMemory) Put(d dataset.Dataset) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i, ok := e.index[d.Name]; ok {
		e.datasets[i] = d
		return nil
	}
	e.index[d.Name] = len(e.datasets)
	e.datasets = append(e.datasets, d)
	return nil
}

func (e *storageMemory) Replace(datasets ...dataset.Dataset) error {
	list := make([]dataset.Dataset, 0, len(datasets))
	index := make(map[string]int, len(datasets))
	for _, d := range datasets {
		if i, ok := index[d.Name]; ok {
			list[i] = d
			continue
		}
		index[d.Name] = len(list)
		list = append(list, d)
	}
	e.mu.Lock()
	e.datasets, e.index = list, index
	e.mu.Unlock()
	return nil
}

func (e *storageMemory) Get(name string) (dataset.Dataset, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i, ok := e.index[name]
	if !ok {
		return dataset.Dataset{}, fmt.Errorf(`%w: %s`, ErrNotFound, name)
	}
	return e.datasets[i], nil
}

func (e *storageMemory) List() ([]dataset.Dataset, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	list := make([]dataset.Dataset, len(e.datasets))
	copy(list, e.datasets)
	return list, nil
}

func (e *storageMemory) Close() {
}

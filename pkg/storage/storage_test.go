package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedaangh/microblog/pkg/dataset"
)

func TestNew(t *testing.T) {
	for _, raw := range []string{``, `memory`, `memory://`} {
		s, err := New(raw)
		require.NoError(t, err, raw)
		s.Close()
	}
	_, err := New(`redis://localhost`)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestMemory(t *testing.T) {
	s, err := New(`memory://`)
	require.NoError(t, err)
	defer s.Close()

	err = Seed(s,
		dataset.Dataset{Name: `b`, Kind: dataset.KindHorizontal},
		dataset.Dataset{Name: `a`, Kind: dataset.KindGrouped},
	)
	require.NoError(t, err)

	require.NoError(t, s.Put(dataset.Dataset{Name: `b`, Kind: dataset.KindHorizontal, Title: `updated`}))
	got, err := s.Get(`b`)
	require.NoError(t, err)
	assert.Equal(t, `updated`, got.Title)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, `b`, list[0].Name)
	assert.Equal(t, `a`, list[1].Name)

	_, err = s.Get(`missing`)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedDropsStale(t *testing.T) {
	s, err := New(`memory://`)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, Seed(s, dataset.Dataset{Name: `old`}, dataset.Dataset{Name: `kept`, Title: `v1`}))
	require.NoError(t, Seed(s, dataset.Dataset{Name: `kept`, Title: `v2`}, dataset.Dataset{Name: `new`}))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, `kept`, list[0].Name)
	assert.Equal(t, `v2`, list[0].Title)
	assert.Equal(t, `new`, list[1].Name)

	_, err = s.Get(`old`)
	assert.ErrorIs(t, err, ErrNotFound)

	// Put still upserts after a replace
	require.NoError(t, s.Put(dataset.Dataset{Name: `later`}))
	list, err = s.List()
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

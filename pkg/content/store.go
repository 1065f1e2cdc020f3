package content

import (
	"context"
	"sync/atomic"

	"github.com/admpub/log"
)

// Store holds the current site snapshot. Readers never block writers.
type Store struct {
	site atomic.Pointer[Site]
}

func NewStore(site *Site) *Store {
	s := &Store{}
	s.site.Store(site)
	return s
}

func (s *Store) Site() *Site {
	return s.site.Load()
}

func (s *Store) Swap(site *Site) {
	s.site.Store(site)
}

func (s *Store) Load(_ context.Context) (*Site, error) {
	return s.Site(), nil
}

// ListPosts fetches the post listing on a best-effort basis: any failure is
// logged and yields an empty list.
func ListPosts(ctx context.Context, src Source) []Post {
	site, err := src.Load(ctx)
	if err != nil {
		log.Warnf("unable to load posts: %v", err)
		return []Post{}
	}
	if site == nil {
		return []Post{}
	}
	return site.Posts
}

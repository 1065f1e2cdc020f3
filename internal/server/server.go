package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/admpub/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vedaangh/microblog/pkg/config"
	"github.com/vedaangh/microblog/pkg/content"
	"github.com/vedaangh/microblog/pkg/geoip"
	"github.com/vedaangh/microblog/pkg/storage"
	"github.com/vedaangh/microblog/pkg/visitor"

	_ "github.com/vedaangh/microblog/pkg/storage/duckdb"
)

type Server struct {
	cfg   config.Config
	store *content.Store
	em    storage.Storager
	geo   *geoip.DB
}

func New(cfg config.Config, store *content.Store, em storage.Storager, geo *geoip.DB) *Server {
	return &Server{cfg: cfg, store: store, em: em, geo: geo}
}

// Open loads the site, opens storage and seeds it with the site datasets.
// Validation problems are logged, not fatal: charts render whatever they get.
func Open(ctx context.Context, cfg config.Config) (*Server, error) {
	site, err := content.FileSource(cfg.Content).Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		log.Warnf("content errors: %v", err)
	}
	for _, problem := range site.Problems() {
		log.Warnf("content problem: %s", problem)
	}
	em, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := storage.Seed(em, site.Datasets...); err != nil {
		em.Close()
		return nil, err
	}
	geo, err := geoip.New(cfg.GeoIPDB)
	if err != nil {
		em.Close()
		return nil, fmt.Errorf(`unable to load GeoIP database: %w`, err)
	}
	return New(cfg, content.NewStore(site), em, geo), nil
}

func (s *Server) Close() {
	s.em.Close()
	if err := s.geo.Close(); err != nil {
		log.Error(err)
	}
}

func (s *Server) Site() *content.Site {
	return s.store.Site()
}

func (s *Server) Storage() storage.Storager {
	return s.em
}

// Reload reseeds the datasets of site, then publishes it, so a new post
// never references a chart that is not stored yet. If reseeding fails the
// previous site stays in place.
func (s *Server) Reload(site *content.Site) {
	if err := storage.Seed(s.em, site.Datasets...); err != nil {
		log.Errorf("unable to reseed datasets, keeping previous content: %v", err)
		return
	}
	s.store.Swap(site)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get(`/`, s.handleHome)
	r.Get(`/blog`, s.handleBlog)
	r.Get(`/blog/{slug}`, s.handlePost)
	r.Get(`/60min`, s.handleBooking)
	r.Get(`/charts/{name}`, s.handleChart)
	r.Route(`/api`, func(r chi.Router) {
		r.Get(`/posts`, s.handlePostsAPI)
		r.Get(`/charts`, s.handleChartListAPI)
		r.Get(`/charts/{name}`, s.handleChartAPI)
	})
	if len(s.cfg.Static) > 0 {
		r.Handle(`/static/*`, http.StripPrefix(`/static/`, http.FileServer(http.Dir(s.cfg.Static))))
	}
	r.NotFound(s.handleNotFound)
	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		v := visitor.FromRequest(r, s.geo)
		log.Infof("%s %s %d %dB %s %s reqid=%s", r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), v, middleware.GetReqID(r.Context()))
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/vedaangh/microblog/pkg/content"
	"github.com/vedaangh/microblog/pkg/dataset"
	"github.com/vedaangh/microblog/pkg/storage"
)

// ErrNonFinite is returned when a dataset's layout holds NaN or infinite
// positions, which JSON cannot represent.
var ErrNonFinite = errors.New(`layout is not finite`)

type finiteLayout interface {
	Finite() bool
}

type ChartSummary struct {
	Name  string       `json:"name"`
	Kind  dataset.Kind `json:"kind"`
	Title string       `json:"title"`
	Rows  int          `json:"rows"`
}

type PostSummary struct {
	Slug    string         `json:"slug"`
	Title   string         `json:"title"`
	Date    string         `json:"date,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Status  content.Status `json:"status"`
}

func (s *Server) handleChartAPI(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, `name`)
	d, err := s.em.Get(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			render.Render(w, r, ErrNotFound(err))
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	layout := d.Layout()
	if l, ok := layout.(finiteLayout); ok && !l.Finite() {
		render.Render(w, r, ErrUnprocessable(fmt.Errorf(`%w: %s`, ErrNonFinite, name)))
		return
	}
	render.JSON(w, r, layout)
}

func (s *Server) handleChartListAPI(w http.ResponseWriter, r *http.Request) {
	list, err := s.em.List()
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	items := make([]ChartSummary, len(list))
	for i, d := range list {
		items[i] = ChartSummary{Name: d.Name, Kind: d.Kind, Title: d.Title, Rows: len(d.Rows)}
	}
	render.JSON(w, r, items)
}

func (s *Server) handlePostsAPI(w http.ResponseWriter, r *http.Request) {
	posts := content.ListPosts(r.Context(), s.store)
	items := make([]PostSummary, len(posts))
	for i, p := range posts {
		items[i] = PostSummary{Slug: p.Slug, Title: p.Title, Summary: p.Summary, Status: p.Status}
		if !p.Date.IsZero() {
			items[i].Date = p.Date.Format(`2006-01-02`)
		}
	}
	render.JSON(w, r, items)
}

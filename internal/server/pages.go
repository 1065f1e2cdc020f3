package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/admpub/log"
	"github.com/coscms/tables"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/vedaangh/microblog/pkg/barchart"
	"github.com/vedaangh/microblog/pkg/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New(`pages`).Funcs(template.FuncMap{
	`upper`: strings.ToUpper,
}).ParseFS(templateFS, `templates/*.html`))

type pageData struct {
	Site       *content.Site
	Title      string
	Posts      []content.Post
	Post       content.Post
	Blocks     []renderedBlock
	Suggestion *content.Post
	Path       string
}

type renderedBlock struct {
	Type content.BlockType
	Text string
	HTML template.HTML
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.Site = s.Site()
	if len(data.Title) == 0 {
		data.Title = data.Site.Title
	}
	buf := bytes.NewBuffer(nil)
	if err := pages.ExecuteTemplate(buf, name, data); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	w.Header().Set(`Content-Type`, `text/html; charset=utf-8`)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, `home.html`, pageData{})
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	posts := content.ListPosts(r.Context(), s.store)
	s.renderPage(w, r, http.StatusOK, `blog.html`, pageData{Title: `Writing`, Posts: posts})
}

func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, `booking.html`, pageData{Title: s.Site().Booking.Title})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, `slug`)
	site := s.Site()
	post, err := site.Post(slug)
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			s.notFound(w, r, slug)
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	data := pageData{Title: post.Title, Post: post}
	if !post.ComingSoon() {
		data.Blocks = s.renderBlocks(post)
	}
	s.renderPage(w, r, http.StatusOK, `post.html`, data)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	slug, _ := strings.CutPrefix(r.URL.Path, `/blog/`)
	if slug == r.URL.Path {
		slug = ``
	}
	s.notFound(w, r, slug)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, slug string) {
	data := pageData{Title: `Not found`, Path: r.URL.Path}
	if len(slug) > 0 {
		if suggestion, ok := s.Site().Suggest(slug); ok {
			data.Suggestion = &suggestion
		}
	}
	s.renderPage(w, r, http.StatusNotFound, `notfound.html`, data)
}

func (s *Server) renderBlocks(post content.Post) []renderedBlock {
	blocks := make([]renderedBlock, 0, len(post.Blocks))
	for _, block := range post.Blocks {
		rb := renderedBlock{Type: block.Type, Text: block.Text}
		switch block.Type {
		case content.BlockChart:
			rb.HTML = s.chartHTML(block.Chart)
		case content.BlockTable:
			if block.Table != nil {
				rb.HTML = tableHTML(block.Table)
			}
		}
		blocks = append(blocks, rb)
	}
	return blocks
}

// chartHTML renders a dataset's box layout. A missing dataset leaves a note
// in the page instead of failing the whole post.
func (s *Server) chartHTML(name string) template.HTML {
	d, err := s.em.Get(name)
	if err != nil {
		log.Warnf("chart %s: %v", name, err)
		return template.HTML(`<p class="chart-missing">Chart unavailable.</p>`)
	}
	html, err := barchart.HTML(d.Layout())
	if err != nil {
		log.Errorf("chart %s: %v", name, err)
		return template.HTML(`<p class="chart-missing">Chart unavailable.</p>`)
	}
	return html + template.HTML(`<p class="chart-link"><a href="/charts/`+template.HTMLEscapeString(name)+`">Interactive version</a></p>`)
}

func tableHTML(t *content.Table) template.HTML {
	table := tables.New()
	if len(t.Caption) > 0 {
		table.SetCaptionContent(t.Caption)
	}
	head := new(tables.Row)
	for _, cell := range t.Head {
		head.AddCell(tables.NewCell(cell))
	}
	table.Head.AddRow(head)
	for _, row := range t.Rows {
		tr := new(tables.Row)
		for _, cell := range row {
			tr.AddCell(tables.NewCell(cell))
		}
		table.Body.AddRow(tr)
	}
	return template.HTML(string(table.Render()))
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/admpub/log"
	"github.com/admpub/pp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vedaangh/microblog/pkg/barchart"
	"github.com/vedaangh/microblog/pkg/config"
	"github.com/vedaangh/microblog/pkg/content"
	"github.com/vedaangh/microblog/pkg/dataset"
	"github.com/vedaangh/microblog/pkg/storage"
)

func newTestServer(t *testing.T) *Server {
	site, err := content.Default()
	require.NoError(t, err)
	em, err := storage.New(`memory://`)
	require.NoError(t, err)
	require.NoError(t, storage.Seed(em, site.Datasets...))
	var cfg config.Config
	cfg.SetDefaults()
	s := New(cfg, content.NewStore(site), em, nil)
	t.Cleanup(s.Close)
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(`User-Agent`, `Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, `/`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `2024 - PRESENT`)
	assert.Contains(t, rec.Body.String(), `https://github.com/example`)

	rec = get(t, h, `/blog`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `/blog/ccpval`)
	assert.Contains(t, rec.Body.String(), `COMING SOON`)

	rec = get(t, h, `/60min`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<iframe src="https://cal.com/example/60min?overlayCalendar=true"`)
}

func TestPost(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, `/blog/ccpval`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `barchart-horizontal`)
	assert.Contains(t, body, `barchart-grouped`)
	assert.Contains(t, body, `-3.27`)
	assert.Contains(t, body, `66.7%`)
	assert.Contains(t, body, `Summary`)
	assert.Contains(t, body, `href="/charts/language-gap"`)

	rec = get(t, h, `/blog/continual-learning`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `COMING SOON`)
	assert.Contains(t, rec.Body.String(), `Return`)
	assert.NotContains(t, rec.Body.String(), `<figure`)
}

func TestNotFoundSuggests(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, `/blog/ccpeval`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/blog/ccpval"`)

	rec = get(t, h, `/nothing/here`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), `Did you mean`)
}

func TestChartAPI(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec := get(t, h, `/api/charts/alignment-score`)
	require.Equal(t, http.StatusOK, rec.Code)
	var layout barchart.HorizontalLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layout))
	pp.Println(layout)
	assert.Equal(t, 50.0, layout.ZeroOffset)
	require.Len(t, layout.Bars, 4)
	assert.Equal(t, `model-a`, layout.Bars[0].Label)
	assert.InDelta(t, 32.7, layout.Bars[0].Width, 1e-9)
	assert.InDelta(t, 17.3, layout.Bars[0].Left, 1e-9)

	rec = get(t, h, `/api/charts/language-gap`)
	require.Equal(t, http.StatusOK, rec.Code)
	var grouped barchart.GroupedLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grouped))
	assert.Equal(t, 166.0, grouped.DomainMax)

	rec = get(t, h, `/api/charts/missing`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, s.Storage().Put(dataset.Dataset{
		Name:   `flat`,
		Kind:   dataset.KindHorizontal,
		Domain: &barchart.Domain{Min: 1, Max: 1},
		Rows:   []dataset.Row{{Label: `a`, Values: []float64{1}}},
	}))
	rec = get(t, h, `/api/charts/flat`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `layout is not finite`)
}

func TestListAPIs(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, `/api/charts`)
	require.Equal(t, http.StatusOK, rec.Code)
	var charts []ChartSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &charts))
	require.Len(t, charts, 3)
	assert.Equal(t, `alignment-score`, charts[0].Name)
	assert.Equal(t, dataset.KindGrouped, charts[2].Kind)

	rec = get(t, h, `/api/posts`)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []PostSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, `2025-03-14`, posts[0].Date)
	assert.Equal(t, content.StatusComingSoon, posts[1].Status)
}

func TestChartPage(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, `/charts/language-gap`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `echarts`)
	assert.Contains(t, body, `Chinese prompts`)
	assert.Contains(t, body, `-150.55`)

	rec = get(t, h, `/charts/missing`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	site, err := content.Parse([]byte("title: next\ndatasets:\n  - name: extra\n    kind: horizontal\n    rows:\n      - {label: x, values: [1]}\n"))
	require.NoError(t, err)
	s.Reload(site)
	assert.Equal(t, `next`, s.Site().Title)
	d, err := s.Storage().Get(`extra`)
	require.NoError(t, err)
	assert.Len(t, d.Rows, 1)

	// datasets removed from the content are no longer served
	rec := get(t, h, `/api/charts`)
	require.Equal(t, http.StatusOK, rec.Code)
	var charts []ChartSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &charts))
	require.Len(t, charts, 1)
	assert.Equal(t, `extra`, charts[0].Name)
	assert.Equal(t, http.StatusNotFound, get(t, h, `/charts/alignment-score`).Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, `/api/charts/alignment-score`).Code)
}

type hookedStorage struct {
	storage.Storager
	replace func(...dataset.Dataset) error
}

func (h hookedStorage) Replace(datasets ...dataset.Dataset) error {
	if err := h.replace(datasets...); err != nil {
		return err
	}
	return h.Storager.Replace(datasets...)
}

func TestReloadSeedsBeforePublishing(t *testing.T) {
	site, err := content.Default()
	require.NoError(t, err)
	em, err := storage.New(`memory://`)
	require.NoError(t, err)
	var cfg config.Config
	cfg.SetDefaults()
	var s *Server
	var titleWhileSeeding string
	var fail bool
	hooked := hookedStorage{Storager: em, replace: func(...dataset.Dataset) error {
		if s != nil {
			titleWhileSeeding = s.Site().Title
		}
		if fail {
			return errors.New(`disk full`)
		}
		return nil
	}}
	require.NoError(t, storage.Seed(hooked, site.Datasets...))
	s = New(cfg, content.NewStore(site), hooked, nil)
	defer s.Close()

	next, err := content.Parse([]byte("title: next\n"))
	require.NoError(t, err)
	s.Reload(next)
	assert.Equal(t, site.Title, titleWhileSeeding)
	assert.Equal(t, `next`, s.Site().Title)

	// a failed reseed keeps the previous site
	fail = true
	last, err := content.Parse([]byte("title: last\n"))
	require.NoError(t, err)
	s.Reload(last)
	assert.Equal(t, `next`, s.Site().Title)
}

func TestStartShutdown(t *testing.T) {
	log.Info(`server test`)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newTestServer(t)
	s.cfg.Listen = `127.0.0.1:0`
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal(`server did not shut down`)
	}
}

func TestChartThemePerServer(t *testing.T) {
	chalk := newTestServer(t)
	chalk.cfg.Theme = `chalk`
	plain := newTestServer(t)

	rec := get(t, chalk.Handler(), `/charts/alignment-score`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"chalk"`)

	rec = get(t, plain.Handler(), `/charts/alignment-score`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"westeros"`)
	assert.NotContains(t, rec.Body.String(), `"chalk"`)
}

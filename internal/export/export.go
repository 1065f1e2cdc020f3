package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/admpub/log"
	"golang.org/x/sync/errgroup"

	"github.com/vedaangh/microblog/pkg/content"
)

const staticPrefix = `/static/`

var ErrUnsafeRoute = errors.New(`route escapes the output directory`)

// Routes lists every page of the site, charts included.
func Routes(site *content.Site) []string {
	routes := []string{`/`, `/blog`, `/60min`}
	for _, post := range site.Posts {
		routes = append(routes, `/blog/`+post.Slug)
	}
	for _, d := range site.Datasets {
		routes = append(routes, `/charts/`+d.Name)
	}
	return routes
}

// Assets lists the files under staticDir as /static/ routes. An empty
// staticDir has no assets.
func Assets(staticDir string) ([]string, error) {
	if len(staticDir) == 0 {
		return nil, nil
	}
	var routes []string
	err := filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		routes = append(routes, staticPrefix+filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("static directory %s does not exist, no assets exported", staticDir)
		return nil, nil
	}
	return routes, err
}

// Target maps a route to the file it is written to under outDir. Pages get
// an index.html, static assets keep their name. Routes that would resolve
// outside outDir are refused.
func Target(outDir, route string) (string, error) {
	clean := path.Clean(`/` + route)
	if clean != route {
		return ``, fmt.Errorf(`%w: %s`, ErrUnsafeRoute, route)
	}
	rel := filepath.FromSlash(strings.TrimPrefix(clean, `/`))
	if !strings.HasPrefix(clean, staticPrefix) {
		rel = filepath.Join(rel, `index.html`)
	}
	if !filepath.IsLocal(rel) {
		return ``, fmt.Errorf(`%w: %s`, ErrUnsafeRoute, route)
	}
	return filepath.Join(outDir, rel), nil
}

// Run renders every route and every file of staticDir through h and writes
// them under outDir, at most concurrency at a time.
func Run(ctx context.Context, h http.Handler, site *content.Site, staticDir string, outDir string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	assets, err := Assets(staticDir)
	if err != nil {
		return err
	}
	routes := append(Routes(site), assets...)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for _, route := range routes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return exportRoute(ctx, h, outDir, route)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	log.Infof("exported %d pages and %d assets to %s", len(routes)-len(assets), len(assets), outDir)
	return nil
}

func exportRoute(ctx context.Context, h http.Handler, outDir, route string) error {
	target, err := Target(outDir, route)
	if err != nil {
		return err
	}
	uri := (&url.URL{Path: route}).RequestURI()
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return fmt.Errorf(`%s: unexpected status %d`, route, rec.Code)
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(target, rec.Body.Bytes(), 0644); err != nil {
		return err
	}
	log.Debugf("exported %s -> %s", route, target)
	return nil
}

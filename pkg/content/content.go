package content

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"github.com/vedaangh/microblog/pkg/dataset"
)

//go:embed site.yaml
var defaultSite []byte

var ErrPostNotFound = errors.New(`post not found`)

type Status string

const (
	StatusPublished  Status = `published`
	StatusComingSoon Status = `coming-soon`
)

type BlockType string

const (
	BlockProse   BlockType = `prose`
	BlockHeading BlockType = `heading`
	BlockChart   BlockType = `chart`
	BlockTable   BlockType = `table`
)

type Site struct {
	Title    string            `yaml:"title"`
	Owner    string            `yaml:"owner"`
	Intro    []string          `yaml:"intro"`
	Portrait Image             `yaml:"portrait"`
	Links    []Link            `yaml:"links"`
	Since    string            `yaml:"since"`
	Booking  Booking           `yaml:"booking"`
	Posts    []Post            `yaml:"posts"`
	Datasets []dataset.Dataset `yaml:"datasets"`
}

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type Link struct {
	Label    string `yaml:"label"`
	Href     string `yaml:"href"`
	External bool   `yaml:"external,omitempty"`
}

type Booking struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	CalendarURL string `yaml:"calendar"`
}

type Post struct {
	Slug     string    `yaml:"slug"`
	Title    string    `yaml:"title"`
	DateText string    `yaml:"date"`
	Date     time.Time `yaml:"-"`
	Summary  string    `yaml:"summary,omitempty"`
	Status   Status    `yaml:"status,omitempty"`
	Blocks   []Block   `yaml:"blocks,omitempty"`
}

func (p Post) ComingSoon() bool {
	return p.Status == StatusComingSoon
}

type Block struct {
	Type  BlockType `yaml:"type"`
	Text  string    `yaml:"text,omitempty"`
	Chart string    `yaml:"chart,omitempty"` // dataset name
	Table *Table    `yaml:"table,omitempty"`
}

type Table struct {
	Caption string     `yaml:"caption,omitempty"`
	Head    []string   `yaml:"head"`
	Rows    [][]string `yaml:"rows"`
}

// Parse decodes a site from YAML and resolves post dates. It does not
// validate; see Site.Validate.
func Parse(b []byte) (*Site, error) {
	site := &Site{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(site); err != nil {
		return nil, err
	}
	for i, post := range site.Posts {
		if len(post.Status) == 0 {
			site.Posts[i].Status = StatusPublished
		}
		if len(post.DateText) == 0 {
			continue
		}
		date, err := dateparse.ParseAny(post.DateText)
		if err != nil {
			return nil, fmt.Errorf(`post %s: invalid date %q: %w`, post.Slug, post.DateText, err)
		}
		site.Posts[i].Date = date
	}
	return site, nil
}

// Default returns the embedded site.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// Source loads a site snapshot.
type Source interface {
	Load(ctx context.Context) (*Site, error)
}

// FileSource reads a YAML file; the empty path means the embedded site.
type FileSource string

func (f FileSource) Load(ctx context.Context) (*Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return Default()
	}
	b, err := os.ReadFile(string(f))
	if err != nil {
		return nil, err
	}
	site, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf(`unable to parse %s: %w`, string(f), err)
	}
	return site, nil
}

func (s *Site) Post(slug string) (Post, error) {
	for _, post := range s.Posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return Post{}, fmt.Errorf(`%w: %s`, ErrPostNotFound, slug)
}

func (s *Site) Dataset(name string) (dataset.Dataset, bool) {
	for _, d := range s.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return dataset.Dataset{}, false
}

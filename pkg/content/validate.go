package content

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// slugs and dataset names become URL paths and export directories.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate reports every structural error in the site at once: bad
// datasets, duplicate or missing slugs, unknown chart references and
// malformed blocks. Charts that would merely render oddly are reported by
// Problems instead.
func (s *Site) Validate() error {
	var merr *multierror.Error
	datasets := map[string]bool{}
	for _, d := range s.Datasets {
		if datasets[d.Name] {
			merr = multierror.Append(merr, fmt.Errorf(`duplicate dataset %q`, d.Name))
		}
		datasets[d.Name] = true
		if !namePattern.MatchString(d.Name) {
			merr = multierror.Append(merr, fmt.Errorf(`dataset name %q must be lowercase letters, digits and dashes`, d.Name))
		}
		if err := d.Validate(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	slugs := map[string]bool{}
	for _, post := range s.Posts {
		if len(post.Slug) == 0 {
			merr = multierror.Append(merr, fmt.Errorf(`post %q has no slug`, post.Title))
		} else if slugs[post.Slug] {
			merr = multierror.Append(merr, fmt.Errorf(`duplicate post slug %q`, post.Slug))
		} else if !namePattern.MatchString(post.Slug) {
			merr = multierror.Append(merr, fmt.Errorf(`post slug %q must be lowercase letters, digits and dashes`, post.Slug))
		}
		slugs[post.Slug] = true
		if len(post.Title) == 0 {
			merr = multierror.Append(merr, fmt.Errorf(`post %s has no title`, post.Slug))
		}
		switch post.Status {
		case StatusPublished, StatusComingSoon:
		default:
			merr = multierror.Append(merr, fmt.Errorf(`post %s: unknown status %q`, post.Slug, post.Status))
		}
		for i, block := range post.Blocks {
			switch block.Type {
			case BlockProse, BlockHeading:
				if len(block.Text) == 0 {
					merr = multierror.Append(merr, fmt.Errorf(`post %s block %d: empty %s`, post.Slug, i, block.Type))
				}
			case BlockChart:
				if !datasets[block.Chart] {
					merr = multierror.Append(merr, fmt.Errorf(`post %s block %d: unknown dataset %q`, post.Slug, i, block.Chart))
				}
			case BlockTable:
				if block.Table == nil {
					merr = multierror.Append(merr, fmt.Errorf(`post %s block %d: missing table`, post.Slug, i))
					continue
				}
				for r, row := range block.Table.Rows {
					if len(row) != len(block.Table.Head) {
						merr = multierror.Append(merr, fmt.Errorf(`post %s block %d: table row %d has %d cells, want %d`, post.Slug, i, r, len(row), len(block.Table.Head)))
					}
				}
			default:
				merr = multierror.Append(merr, fmt.Errorf(`post %s block %d: unknown block type %q`, post.Slug, i, block.Type))
			}
		}
	}
	return merr.ErrorOrNil()
}

// Problems lists rendering hazards of structurally valid datasets, such as
// zero-width domains or values outside the domain. They do not stop a site
// from being served.
func (s *Site) Problems() []string {
	var problems []string
	for _, d := range s.Datasets {
		if d.Validate() != nil {
			continue
		}
		for _, problem := range d.Problems() {
			problems = append(problems, fmt.Sprintf(`dataset %s: %s`, d.Name, problem))
		}
	}
	return problems
}

// Check combines Validate and Problems into one error.
func (s *Site) Check() error {
	merr := multierror.Append(nil, s.Validate())
	for _, problem := range s.Problems() {
		merr = multierror.Append(merr, errors.New(problem))
	}
	return merr.ErrorOrNil()
}

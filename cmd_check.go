package main

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/vedaangh/microblog/pkg/content"
	"github.com/vedaangh/microblog/pkg/storage"
	"github.com/vedaangh/microblog/pkg/storage/duckdb"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the site content and its chart datasets",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	site, err := content.FileSource(cfg.Content).Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := site.Check(); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				fmt.Fprintf(out, "✗ %v\n", e)
			}
			return fmt.Errorf("%d content problem(s)", len(merr.Errors))
		}
		return err
	}
	fmt.Fprintf(out, "✓ %d posts, %d datasets\n", len(site.Posts), len(site.Datasets))

	em, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}
	defer em.Close()
	if err := storage.Seed(em, site.Datasets...); err != nil {
		return err
	}
	if kdb, ok := em.(duckdb.Storager); ok {
		summaries, err := kdb.Summaries()
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Fprintf(out, "  %-20s %3d rows  [%v, %v]\n", s.Name, s.Rows, s.Min, s.Max)
		}
	}
	return nil
}

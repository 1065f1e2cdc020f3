package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vedaangh/microblog/internal/export"
	"github.com/vedaangh/microblog/internal/server"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every page to static HTML files",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "./public", "output directory")
	exportCmd.Flags().Int("concurrency", 4, "pages rendered in parallel")
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	ctx, cancel := signalContext()
	defer cancel()

	srv, err := server.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()
	if err := srv.Site().Validate(); err != nil {
		return fmt.Errorf("refusing to export invalid content: %w", err)
	}
	return export.Run(ctx, srv.Handler(), srv.Site(), cfg.Static, outDir, concurrency)
}

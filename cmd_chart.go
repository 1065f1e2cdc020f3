package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vedaangh/microblog/pkg/content"
	"github.com/vedaangh/microblog/pkg/termchart"
)

var chartCmd = &cobra.Command{
	Use:   "chart [dataset]",
	Short: "Preview a dataset as a chart in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntP("width", "w", 60, "track width in cells")
}

func runChart(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	site, err := content.FileSource(cfg.Content).Load(cmd.Context())
	if err != nil {
		return err
	}
	d, ok := site.Dataset(args[0])
	if !ok {
		names := make([]string, len(site.Datasets))
		for i, d := range site.Datasets {
			names[i] = d.Name
		}
		return fmt.Errorf("unknown dataset %q, have %v", args[0], names)
	}
	out, err := termchart.Render(d.Layout(), width)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

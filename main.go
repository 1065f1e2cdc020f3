package main

import (
	"fmt"
	"os"

	"github.com/admpub/log"
	"github.com/spf13/cobra"

	"github.com/vedaangh/microblog/pkg/config"
)

// CGO_ENABLED=1 go run . serve -c config/config.json --watch

var (
	configPath  string
	contentPath string
	debug       bool
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:   "microblog",
	Short: "Personal website with a blog and diverging bar charts",
	Long: `microblog serves a personal homepage, a blog whose posts embed bar charts,
and a booking page. Site content comes from a YAML file; chart datasets are
kept in memory or in DuckDB.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		if len(contentPath) > 0 {
			cfg.Content = contentPath
		}
		if debug {
			cfg.Debug = true
		}
		if cfg.Debug {
			log.SetLevel(`Debug`)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/config.json", "config file (JSON5)")
	rootCmd.PersistentFlags().StringVar(&contentPath, "content", "", "site YAML file, overrides the config")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, exportCmd, chartCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

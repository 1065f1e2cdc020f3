package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/admpub/log"
	"github.com/spf13/cobra"

	"github.com/vedaangh/microblog/internal/server"
	"github.com/vedaangh/microblog/pkg/content"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address, overrides the config")
	serveCmd.Flags().Bool("watch", false, "reload the content file when it changes")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, args []string) error {
	if listen, _ := cmd.Flags().GetString("listen"); len(listen) > 0 {
		cfg.Listen = listen
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cfg.Watch = true
	}
	ctx, cancel := signalContext()
	defer cancel()

	srv, err := server.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	if cfg.Watch {
		if len(cfg.Content) == 0 {
			log.Warnf("--watch ignored: the embedded site has no file to watch")
		} else {
			watcher, err := content.NewWatcher(cfg.Content, srv.Reload)
			if err != nil {
				return err
			}
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop()
		}
	}
	return srv.Start(ctx)
}

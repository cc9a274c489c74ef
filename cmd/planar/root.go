package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/planar/internal/config"
)

// Version is the current version of planar.
const Version = "0.1.0"

// app is the state every subcommand shares once PersistentPreRunE has run.
type app struct {
	cfg   *config.Config
	debug bool
}

// NewRootCommand creates the root cobra command for planar.
func NewRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "planar",
		Short: "planar - a 2D coordinate-plane line editor",
		Long: `planar draws lines on an infinite Cartesian plane under a pannable,
zoomable camera with an adaptive grid. The render command replays an input
script headlessly; serve hosts the browser build and a render API.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			if a.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newRenderCommand(a))
	cmd.AddCommand(newServeCommand(a))

	return cmd
}


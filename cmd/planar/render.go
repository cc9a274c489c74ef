package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/planar/internal/engine"
	"github.com/inamate/planar/internal/export"
	"github.com/inamate/planar/internal/script"
	"github.com/inamate/planar/internal/typeid"
)

type renderOptions struct {
	script   string
	output   string
	commands bool
	list     bool
	width    int
	height   int
	ppu      float64
}

func newRenderCommand(a *app) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay an input script and write the resulting view",
		Long: `Replay an input script against a fresh editor and write the final frame,
either as a PNG or, with --commands, as JSON draw commands plus the shape list.
Use "-" as the output to write to stdout.`,
		Example: `  planar render --script session.yaml -o view.png
  planar render --script session.yaml --commands -o -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.LoadFile(opts.script)
			if err != nil {
				return err
			}
			// Flags win over the script, which wins over the environment.
			if cmd.Flags().Changed("width") {
				s.Width = opts.width
			}
			if cmd.Flags().Changed("height") {
				s.Height = opts.height
			}
			if cmd.Flags().Changed("ppu") {
				s.PPU = opts.ppu
			}
			if err := s.Validate(); err != nil {
				return err
			}
			return runRender(a, opts, s, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "Input script (YAML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "planar.png", "Output file, or - for stdout")
	cmd.Flags().BoolVar(&opts.commands, "commands", false, "Write JSON draw commands instead of a PNG")
	cmd.Flags().BoolVar(&opts.list, "list", false, "Print the shape list after rendering")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Viewport width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Viewport height in pixels")
	cmd.Flags().Float64Var(&opts.ppu, "ppu", 0, "Initial zoom in pixels per unit")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func runRender(a *app, opts *renderOptions, s *script.Script, stdout io.Writer) error {
	log := slog.With("session", typeid.NewSessionID())
	log.Info("render started", "script", opts.script, "events", len(s.Events))

	// The output is only created once the replay succeeded, so a failed run
	// leaves no empty file behind.
	var eng *engine.Engine
	if opts.commands {
		eng = engine.New(a.cfg, engine.WithLogger(log))
		if _, err := eng.Replay(s); err != nil {
			return err
		}
		frame := export.Frame{
			Commands: json.RawMessage(eng.Render()),
			Shapes:   json.RawMessage(eng.Shapes()),
		}
		out, closeOut, err := openOutput(opts.output, stdout)
		if err != nil {
			return err
		}
		defer closeOut()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(frame); err != nil {
			return fmt.Errorf("write commands: %w", err)
		}
	} else {
		ras, e, err := export.RenderScript(a.cfg, s, engine.WithLogger(log))
		if err != nil {
			return err
		}
		defer ras.Close()
		eng = e
		out, closeOut, err := openOutput(opts.output, stdout)
		if err != nil {
			return err
		}
		defer closeOut()
		if err := ras.EncodePNG(out); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}

	if opts.list {
		for _, line := range eng.ShapeLines() {
			fmt.Fprintln(stdout, line)
		}
	}

	cam := eng.Camera()
	log.Info("render complete",
		"output", opts.output,
		"shapes", eng.Scene().Len(),
		"ppu", cam.PPU(),
		"position", cam.Position().String(),
	)
	return nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Error("close output", "path", path, "error", err)
		}
	}, nil
}

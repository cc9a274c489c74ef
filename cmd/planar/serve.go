package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/inamate/planar/internal/asset"
	"github.com/inamate/planar/internal/config"
	"github.com/inamate/planar/internal/export"
	mw "github.com/inamate/planar/internal/middleware"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port   int
		webDir string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser build and the render API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			if cmd.Flags().Changed("web-dir") {
				a.cfg.WebDir = webDir
			}
			return serve(cmd.Context(), a.cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default from PLANAR_PORT)")
	cmd.Flags().StringVar(&webDir, "web-dir", "", "Directory holding index.html and planar.wasm")

	return cmd
}

// newRouter wires every route the server exposes.
func newRouter(cfg *config.Config) *mux.Router {
	exportHandler := export.NewHandler(cfg)
	assetHandler := asset.NewHandler(cfg.WebDir)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Render endpoints
	r.HandleFunc("/export/preview.png", exportHandler.Preview("png")).Methods("GET")
	r.HandleFunc("/export/preview.json", exportHandler.Preview("json")).Methods("GET")
	r.HandleFunc("/export/render", exportHandler.Render).Methods("POST")

	// Browser host
	r.PathPrefix("/").Handler(assetHandler.Serve()).Methods("GET", "HEAD")

	return r
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	defer close(done)

	// Graceful shutdown
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	slog.Info("server starting", "addr", addr, "web_dir", cfg.WebDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

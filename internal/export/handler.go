// Package export serves PNG and draw-command renderings of the plane over HTTP.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/inamate/planar/internal/config"
	"github.com/inamate/planar/internal/engine"
	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/script"
	"github.com/inamate/planar/internal/surface"
)

const (
	maxScriptSize = 1 << 20 // 1MB
	maxDimension  = 4096
	maxCoordinate = 1 << 53 // beyond this, adjacent grid lines collapse
)

// Handler renders views from a fresh engine per request.
type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// Frame is the JSON form of a rendered view.
type Frame struct {
	Commands json.RawMessage `json:"commands"`
	Shapes   json.RawMessage `json:"shapes"`
}

// Preview handles GET /export/preview.{png,json}: the empty grid for the view
// given by the x, y, ppu, width and height query parameters.
func (h *Handler) Preview(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, center, err := h.viewFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if format == "json" {
			eng := engine.New(cfg)
			eng.Camera().SetPosition(center)
			writeFrame(w, eng)
			return
		}

		ras, err := surface.NewRaster(cfg.Width, cfg.Height)
		if err != nil {
			slog.Error("create raster", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer ras.Close()

		eng := engine.New(cfg, engine.WithMeasurer(ras))
		eng.Camera().SetPosition(center)
		eng.RenderTo(ras)
		writePNG(w, ras)
	}
}

// Render handles POST /export/render. The body is an input script; the response
// is the resulting view as a PNG, or as a Frame when format=json.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxScriptSize)

	s, err := script.Load(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := s.Viewport(script.Viewport{Width: h.cfg.Width, Height: h.cfg.Height, PPU: h.cfg.PPU})
	if err := checkSize(v.Width, v.Height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, ev := range s.Events {
		if ev.Type == script.EventResize {
			if err := checkSize(ev.Width, ev.Height); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
	}

	if r.URL.Query().Get("format") == "json" {
		eng := engine.New(h.cfg)
		if _, err := eng.Replay(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeFrame(w, eng)
		return
	}

	ras, eng, err := RenderScript(h.cfg, s)
	if err != nil {
		if errors.Is(err, errRaster) {
			slog.Error("render script", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer ras.Close()

	slog.Info("export render", "events", len(s.Events), "shapes", eng.Scene().Len(), "width", ras.Width(), "height", ras.Height())
	writePNG(w, ras)
}

var errRaster = errors.New("export: create raster")

// RenderScript replays s on a fresh engine built from cfg and paints the result.
// The returned raster matches the camera's final size and must be closed by the
// caller.
func RenderScript(cfg *config.Config, s *script.Script, opts ...engine.Option) (*surface.Raster, *engine.Engine, error) {
	v := s.Viewport(script.Viewport{Width: cfg.Width, Height: cfg.Height, PPU: cfg.PPU})
	ras, err := surface.NewRaster(v.Width, v.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errRaster, err)
	}

	eng := engine.New(cfg, append(opts, engine.WithMeasurer(ras))...)
	if _, err := eng.Replay(s); err != nil {
		ras.Close()
		return nil, nil, err
	}

	// A resize event leaves the camera at a different size than the raster. The
	// first raster stays open until the frame is drawn since it measures labels.
	target := ras
	if cam := eng.Camera(); cam.Width() != ras.Width() || cam.Height() != ras.Height() {
		target, err = surface.NewRaster(cam.Width(), cam.Height())
		if err != nil {
			ras.Close()
			return nil, nil, fmt.Errorf("%w: %w", errRaster, err)
		}
	}
	eng.RenderTo(target)
	if target != ras {
		ras.Close()
	}
	return target, eng, nil
}

func (h *Handler) viewFromQuery(r *http.Request) (*config.Config, geom.Vec2, error) {
	cfg := *h.cfg
	q := r.URL.Query()

	var center geom.Vec2
	floats := []struct {
		key string
		dst *float64
	}{
		{"x", &center.X},
		{"y", &center.Y},
		{"ppu", &cfg.PPU},
	}
	for _, f := range floats {
		if v := q.Get(f.key); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, geom.Vec2{}, fmt.Errorf("invalid %s: %q", f.key, v)
			}
			*f.dst = n
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"width", &cfg.Width},
		{"height", &cfg.Height},
	}
	for _, f := range ints {
		if v := q.Get(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, geom.Vec2{}, fmt.Errorf("invalid %s: %q", f.key, v)
			}
			*f.dst = n
		}
	}

	if err := checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, geom.Vec2{}, err
	}
	if !inRange(center.X) || !inRange(center.Y) {
		return nil, geom.Vec2{}, fmt.Errorf("position (%g, %g) out of range (±%d)", center.X, center.Y, int64(maxCoordinate))
	}
	// Out-of-range zoom is clamped by the camera rather than rejected.
	if cfg.PPU <= 0 {
		return nil, geom.Vec2{}, errors.New("ppu must be positive")
	}
	return &cfg, center, nil
}

func inRange(v float64) bool {
	return math.Abs(v) <= maxCoordinate
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return fmt.Errorf("viewport %dx%d out of range (1-%d)", width, height, maxDimension)
	}
	return nil
}

func writePNG(w http.ResponseWriter, ras *surface.Raster) {
	var buf bytes.Buffer
	if err := ras.EncodePNG(&buf); err != nil {
		slog.Error("encode png", "error", err)
		http.Error(w, "failed to encode image", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func writeFrame(w http.ResponseWriter, eng *engine.Engine) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Frame{
		Commands: json.RawMessage(eng.Render()),
		Shapes:   json.RawMessage(eng.Shapes()),
	})
}

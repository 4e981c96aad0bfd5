// internal/router/router.go

// Package router exposes the read-only HTTP surface: a health probe
// and per-drive status with live signal values. Handlers never touch
// the serial bus; they read the shared table and board only.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"

	"github.com/tamzrod/servo-telemetry/internal/registry"
	"github.com/tamzrod/servo-telemetry/internal/status"
)

// driveView is one drive's status plus the latest value of every signal
// registered under its name.
type driveView struct {
	status.Snapshot
	Signals map[string]any `json:"signals"`
}

// New builds the router. The table and board are shared with the
// pollers and are safe for concurrent reads.
func New(log zerolog.Logger, tbl *registry.Table, board *status.Board) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/drives", func(w http.ResponseWriter, _ *http.Request) {
		snaps := board.All()
		views := make([]driveView, 0, len(snaps))
		for _, s := range snaps {
			views = append(views, driveView{Snapshot: s, Signals: tbl.Prefixed(s.Drive)})
		}
		writeJSON(log, w, views)
	})

	r.Get("/drives/{drive}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "drive")
		s, ok := board.Snapshot(name)
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(log, w, driveView{Snapshot: s, Signals: tbl.Prefixed(name)})
	})

	return r
}

func writeJSON(log zerolog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("response encoding failed")
	}
}

// Serve listens on addr until ctx is cancelled, then shuts the server
// down gracefully.
func Serve(ctx context.Context, log zerolog.Logger, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

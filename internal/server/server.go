// Package server assembles the HTTP and WebSocket routes and runs the
// server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/silic/internal/activity"
	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/editor"
	"github.com/matthewbaird/silic/internal/editor/wire"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/handler"
	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/types"
)

// Config holds the server's dependencies.
type Config struct {
	Port int

	Catalog    *catalog.Store
	Policy     types.LandlordPolicy
	Activity   activity.Store
	Appraisals *kv.Appraisals
	Form       *edital.Adapted
	Validator  *edital.Validator
	Sessions   *editor.Manager
	Recorder   event.Recorder
}

// NewRouter registers every route on a chi router wrapped in the recovery
// and logging middleware.
func NewRouter(cfg Config) http.Handler {
	handler.SetRecorder(cfg.Recorder)

	r := chi.NewRouter()
	r.Use(handler.Recovery, handler.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	ph := handler.NewPropertyHandler(cfg.Catalog)
	lh := handler.NewLandlordHandler(cfg.Catalog)
	ah := handler.NewAppraisalHandler(cfg.Catalog, cfg.Appraisals)
	acth := handler.NewActivityHandler(cfg.Activity, cfg.Catalog)
	dh := handler.NewDashboardHandler(cfg.Catalog, cfg.Policy)
	eh := handler.NewEditalHandler(cfg.Form, cfg.Validator)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", ph.ListProperties)
			r.Post("/", ph.CreateProperty)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", ph.GetProperty)
				r.Patch("/", ph.UpdateProperty)
				r.Get("/landlords", ph.ListPropertyLandlords)
				r.Get("/edits/{tab}", ph.GetEdit)
				r.Put("/edits/{tab}", ph.SaveEdit)
				r.Get("/appraisal", ah.GetAppraisal)
				r.Put("/appraisal", ah.PutAppraisal)
				r.Delete("/appraisal", ah.DeleteAppraisal)
				r.Get("/activity", acth.GetPropertyActivity)
			})
		})
		r.Get("/landlords", lh.ListLandlords)
		r.Post("/landlords", lh.CreateLandlord)

		r.Get("/dashboard", dh.GetDashboard)
		r.Get("/audit", dh.GetAudit)

		r.Get("/activity/{entity_type}/{entity_id}", acth.GetEntityActivity)
		r.Post("/activity/search", acth.SearchActivity)

		r.Get("/edital/schema", eh.GetSchema)
		r.Post("/edital/sections/{id}/validate", eh.ValidateSection)
		r.Get("/edital/ws", wire.NewHandler(cfg.Sessions, cfg.Validator, cfg.Recorder).ServeHTTP)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server: shutdown: %v", err)
		}
	}()

	log.Printf("server: listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

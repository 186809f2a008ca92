// Package dev runs the development orchestrator: an HTTP server exposing
// the live-update channel and a small status API, a watcher on the route
// table file, and optionally the project's frontend dev command.
package dev

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/mkove/routegen/internal/config"
	"github.com/mkove/routegen/internal/diag"
	"github.com/mkove/routegen/internal/emitter"
	"github.com/mkove/routegen/internal/routes"
	"github.com/mkove/routegen/internal/source"
)

// WebSocketPath is where dev clients connect for live updates.
const WebSocketPath = "/_routegen/ws"

// Orchestrator wires route table sources to the emitter and serves the dev
// API.
type Orchestrator struct {
	cfg      *config.Config
	reporter *diag.Reporter
	emitter  *emitter.Emitter
	hub      *source.Hub
	fileSrc  *source.File

	mu          sync.Mutex
	routeCount  int
	lastRun     time.Time
	generations int
}

// New creates an orchestrator around an already configured emitter.
func New(cfg *config.Config, reporter *diag.Reporter, em *emitter.Emitter) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		reporter: reporter,
		emitter:  em,
		hub:      source.NewHub(reporter),
		fileSrc:  source.NewFile(cfg.Routes, reporter),
	}
	em.SetExcluder(o.fileSrc)
	o.hub.Subscribe(o.generate)
	o.fileSrc.Subscribe(o.generate)
	return o
}

// generate runs one pipeline round. Deliveries from every source funnel
// through here; the pipeline itself never fails the host. Clients are only
// notified when the declaration file actually changed; a skipped
// byte-identical round must not trigger downstream reloads.
func (o *Orchestrator) generate(table []routes.Record) {
	wrote := o.emitter.Generate(context.Background(), table)

	valid, _ := routes.Filter(table)
	o.mu.Lock()
	o.routeCount = len(valid)
	o.lastRun = time.Now()
	o.generations++
	o.mu.Unlock()

	if wrote {
		o.hub.NotifyGenerated()
	}
}

// Run starts every subsystem and blocks until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)

	if _, err := os.Stat(o.cfg.Routes); err == nil {
		go func() {
			errCh <- o.fileSrc.Start(ctx)
		}()
	} else {
		o.reporter.Hintf("route table file %s not found; waiting for live updates only", o.cfg.Routes)
	}

	go func() {
		errCh <- o.hub.Start(ctx)
	}()

	if o.cfg.Dev.FrontendCmd != "" {
		go func() {
			errCh <- o.runFrontend(ctx)
		}()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", o.cfg.Dev.Port),
		Handler: o.Router(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	o.reporter.Infof("routegen dev server listening on http://localhost:%d", o.cfg.Dev.Port)
	o.reporter.Hintf("connect your dev client to ws://localhost:%d%s", o.cfg.Dev.Port, WebSocketPath)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dev server failed: %w", err)
	}

	// Collect whichever subsystem finished first after shutdown; the rest
	// stop with the context.
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// Router builds the dev HTTP surface: the WebSocket endpoint and the REST
// API described with huma.
func (o *Orchestrator) Router() http.Handler {
	router := chi.NewRouter()
	router.Get(WebSocketPath, o.hub.HandleWebSocket)

	api := humachi.New(router, huma.DefaultConfig("routegen dev API", "0.1.0"))
	o.registerStatus(api)
	o.registerIngest(api)
	return router
}

// StatusResponse reports the orchestrator state.
type StatusResponse struct {
	Body struct {
		Routes      int    `json:"routes" doc:"Route count of the last generation"`
		Generations int    `json:"generations" doc:"Pipeline rounds since startup"`
		Output      string `json:"output" doc:"Resolved declaration file location"`
		LastRun     string `json:"lastRun,omitempty" doc:"RFC3339 time of the last pipeline round"`
		Clients     int    `json:"clients" doc:"Connected dev clients"`
	}
}

func (o *Orchestrator) registerStatus(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Orchestrator status",
		Tags:        []string{"Dev"},
	}, func(ctx context.Context, input *struct{}) (*StatusResponse, error) {
		resp := &StatusResponse{}
		o.mu.Lock()
		resp.Body.Routes = o.routeCount
		resp.Body.Generations = o.generations
		if !o.lastRun.IsZero() {
			resp.Body.LastRun = o.lastRun.Format(time.RFC3339)
		}
		o.mu.Unlock()
		resp.Body.Output = o.emitter.OutputURL()
		resp.Body.Clients = o.hub.ClientCount()
		return resp, nil
	})
}

// IngestResponse acknowledges a delivered route table.
type IngestResponse struct {
	Body struct {
		Accepted int `json:"accepted" doc:"Records accepted into the pipeline"`
	}
}

func (o *Orchestrator) registerIngest(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deliver-routes",
		Method:      http.MethodPost,
		Path:        "/api/routes",
		Summary:     "Deliver a route table",
		Description: "Alternative inbound channel to the WebSocket live-update event.",
		Tags:        []string{"Dev"},
	}, func(ctx context.Context, input *struct {
		Body []routes.Record
	}) (*IngestResponse, error) {
		o.generate(input.Body)
		resp := &IngestResponse{}
		resp.Body.Accepted = len(input.Body)
		return resp, nil
	})
}

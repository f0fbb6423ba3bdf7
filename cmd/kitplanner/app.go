package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"kitplanner/internal/booking"
	"kitplanner/internal/capture"
	"kitplanner/internal/config"
	"kitplanner/internal/ics"
	appLog "kitplanner/internal/log"
	"kitplanner/internal/metrics"
	"kitplanner/internal/model"
	"kitplanner/internal/store"
	"kitplanner/internal/web"
)

// ServeCmd runs the dashboard until SIGINT/SIGTERM.
type ServeCmd struct{}

func (c *ServeCmd) Run(app *appContext) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, app.cfg)
	if err != nil {
		return err
	}

	sched := cron.New(cron.WithLocation(a.loc))
	if _, err := sched.AddFunc("@midnight", func() {
		appLog.Debug("midnight: dropping cached weeks")
		a.server.InvalidateWeeks()
	}); err != nil {
		return fmt.Errorf("schedule midnight job: %w", err)
	}
	if spec := app.cfg.Snapshot.Cron; spec != "" {
		if _, err := sched.AddFunc(spec, func() { a.snapshot(ctx, app.cfg.Snapshot.URL, app.cfg.Snapshot.Output) }); err != nil {
			return fmt.Errorf("schedule snapshot %q: %w", spec, err)
		}
		appLog.Info("snapshot scheduled", "cron", spec, "output", app.cfg.Snapshot.Output)
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	err = web.StartServer(ctx, app.cfg.Listen, a.server.Handler())
	appLog.Info("kitplanner exiting")
	return err
}

// SnapshotCmd captures the planner once. Without --url an in-process
// server is started on the configured listen address for the capture.
type SnapshotCmd struct {
	URL    string `help:"Capture this dashboard instead of starting one."`
	Output string `help:"PNG output path (overrides config)." type:"path"`
}

func (c *SnapshotCmd) Run(app *appContext) error {
	ctx, cancel := signalContext()
	defer cancel()

	output := c.Output
	if output == "" {
		output = app.cfg.Snapshot.Output
	}

	a, err := newApp(ctx, app.cfg)
	if err != nil {
		return err
	}

	target := c.URL
	if target == "" {
		target = app.cfg.Snapshot.URL
		srvCtx, stop := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- web.StartServer(srvCtx, app.cfg.Listen, a.server.Handler())
			close(done)
		}()
		defer func() {
			stop()
			<-done
		}()
		if err := waitHealthy(ctx, "http://"+app.cfg.Listen+"/health", done); err != nil {
			return err
		}
	}

	return a.snapshot(ctx, target, output)
}

// app holds the wired host components shared by the commands.
type app struct {
	cfg     *config.Config
	loc     *time.Location
	store   *store.Store
	metrics *metrics.PlannerMetrics
	server  *web.Server
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	loc := web.ResolveLocation(cfg.Timezone)
	services, clients := catalog(cfg.Catalog)
	st := store.New(services, clients)

	if cfg.SeedICS != "" {
		if _, err := ics.Seed(ctx, ics.NewFetcher(""), st, cfg.SeedICS, loc); err != nil {
			// The planner still works without its seed.
			appLog.Error("seed calendar failed", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewPlannerMetrics(reg)
	m.SetAppointments(st.Len())

	srv, err := web.NewServer(cfg, web.Deps{
		Store:    st,
		Bookings: booking.New(st, loc, cfg.Owner),
		Metrics:  m,
		Gatherer: reg,
		Location: loc,
	})
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}
	return &app{cfg: cfg, loc: loc, store: st, metrics: m, server: srv}, nil
}

func (a *app) snapshot(ctx context.Context, url, output string) error {
	opts := capture.CaptureOptions{
		URL:        url,
		OutputPath: output,
		Width:      a.cfg.Snapshot.Width,
		Height:     a.cfg.Snapshot.Height,
	}
	if a.cfg.BasicAuth != nil {
		opts.Username = a.cfg.BasicAuth.Username
		opts.Password = a.cfg.BasicAuth.Password
	}
	err := capture.CapturePlannerPNG(ctx, opts)
	a.metrics.ObserveSnapshot(err)
	if err != nil {
		appLog.Error("planner snapshot failed", err, "url", url)
	}
	return err
}

func catalog(c config.CatalogConfig) ([]model.Service, []model.Client) {
	services := make([]model.Service, 0, len(c.Services))
	for _, s := range c.Services {
		services = append(services, model.Service{
			ID:              s.ID,
			Name:            s.Name,
			Category:        s.Category,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	clients := make([]model.Client, 0, len(c.Clients))
	for _, cl := range c.Clients {
		clients = append(clients, model.Client{ID: cl.ID, Name: cl.Name})
	}
	return services, clients
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			appLog.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// waitHealthy polls url until it answers 200, the server exits or ctx ends.
func waitHealthy(ctx context.Context, url string, serverDone <-chan error) error {
	client := &http.Client{Timeout: time.Second}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(10 * time.Second)

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case err := <-serverDone:
			if err == nil {
				err = fmt.Errorf("server stopped")
			}
			return fmt.Errorf("snapshot server: %w", err)
		case <-deadline:
			return fmt.Errorf("snapshot server not healthy at %s", url)
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

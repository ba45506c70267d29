package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nzgridlab/gridsim/api"
	"github.com/nzgridlab/gridsim/config"
	coremetrics "github.com/nzgridlab/gridsim/core/metrics"
	"github.com/nzgridlab/gridsim/infra/logger"
	"github.com/nzgridlab/gridsim/infra/metrics"
)

// Service wires the engine behind the HTTP API and the metrics exporters.
type Service struct {
	Engine *Engine

	srv      *http.Server
	log      logger.Logger
	promPort string
}

// New creates a Service from the configuration. Loading the source data
// happens here, so construction can take a few seconds on full extracts.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	engine := NewEngine(cfg.Data, logg, sink)
	handler := api.NewHandler(engine, logg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	promPort := ""
	if cfg.Metrics.PrometheusEnabled() {
		promPort = cfg.Metrics.PrometheusPort
	}
	return &Service{Engine: engine, srv: srv, log: logg, promPort: promPort}, nil
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

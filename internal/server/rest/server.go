// Package rest exposes the account and lease operations over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/botofarm/internal/logging"
	"github.com/dmitrijs2005/botofarm/internal/server/metrics"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/dmitrijs2005/botofarm/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

type AccountService interface {
	CreateAccount(ctx context.Context, draft services.AccountDraft) (*models.Account, error)
	ListAccounts(ctx context.Context, skip, limit int) ([]*models.Account, error)
	Ping(ctx context.Context) error
}

type LeaseService interface {
	Acquire(ctx context.Context, id string) (int64, error)
	Release(ctx context.Context, id string) error
}

type Options struct {
	Address         string
	APIPrefix       string
	ShutdownTimeout time.Duration
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
}

type Server struct {
	opts     Options
	accounts AccountService
	leases   LeaseService
	logger   logging.Logger
}

func NewServer(opts Options, l logging.Logger, as AccountService, ls LeaseService) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	return &Server{
		opts:     opts,
		accounts: as,
		leases:   ls,
		logger:   l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String(), "api_prefix", s.opts.APIPrefix)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jbweber/homelab/stagerad/internal/api"
	"github.com/jbweber/homelab/stagerad/internal/auth"
	"github.com/jbweber/homelab/stagerad/internal/config"
	"github.com/jbweber/homelab/stagerad/internal/datastore"
	"github.com/jbweber/homelab/stagerad/internal/logger"
)

// Server holds the state for the HTTP server.
type Server struct {
	addr            string
	handler         http.Handler
	routes          *api.API
	ds              *datastore.Datastore
	shutdownTimeout time.Duration
	http            *http.Server
}

// New creates a server from a loaded configuration: it configures logging,
// opens and migrates the datastore and wires the API.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
	})

	maxBody, err := cfg.MaxBodyBytes()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.TokenTTL()
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return nil, err
	}

	ds, err := cfg.InitializeDatabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	tokens := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.Auth.Secret,
		TokenTTL:    ttl,
		TokenIssuer: cfg.Auth.Issuer,
	})
	a := api.NewAPI(ds, tokens, api.Options{
		AppName:      cfg.App.Name,
		MaxBodyBytes: maxBody,
		Paging: api.PagingOptions{
			DefaultSize: cfg.Pagination.DefaultSize,
			MaxSize:     cfg.Pagination.MaxSize,
		},
	})

	return &Server{
		addr:            ":" + cfg.Server.Port,
		handler:         a.NewRouter(),
		routes:          a,
		ds:              ds,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.http = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		serverErrors <- s.http.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeDatastore()
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("Shutdown requested, draining connections")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server, releases the API's prepared
// statements and closes the datastore.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		} else {
			logger.Info().Msg("HTTP server gracefully stopped")
		}
	}

	if err := s.closeDatastore(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Server) closeDatastore() error {
	var errs []error
	if s.routes != nil {
		if err := s.routes.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release prepared statements")
			errs = append(errs, err)
		}
		s.routes = nil
	}

	if s.ds != nil {
		if err := s.ds.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close datastore")
			errs = append(errs, err)
		}
		s.ds = nil
	}
	return errors.Join(errs...)
}

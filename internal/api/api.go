package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jbweber/homelab/stagerad/internal/auth"
	"github.com/jbweber/homelab/stagerad/internal/datastore"
	"github.com/jbweber/homelab/stagerad/internal/logger"
	"github.com/jbweber/homelab/stagerad/internal/repository"
	"github.com/jbweber/homelab/stagerad/internal/service"
)

// Options configures the HTTP surface
type Options struct {
	AppName      string
	MaxBodyBytes int64
	Paging       PagingOptions
}

// API holds the dependencies shared by every handler group
type API struct {
	ds      *datastore.Datastore
	tokens  *auth.JWTService
	headers *HeaderUtil
	repo    repository.StageRadiologieRepository
	stages  *StageRadiologies
}

// NewAPI wires the repository, service and handlers over the datastore
func NewAPI(ds *datastore.Datastore, tokens *auth.JWTService, opts Options) *API {
	repo := repository.NewStageRadiologieRepository(ds)
	svc := service.NewStageRadiologieService(repo, auth.ContextIdentityProvider{})
	headers := NewHeaderUtil(opts.AppName)

	return &API{
		ds:      ds,
		tokens:  tokens,
		headers: headers,
		repo:    repo,
		stages:  NewStageRadiologies(svc, headers, opts.Paging, opts.MaxBodyBytes),
	}
}

// Close releases resources held by the repositories. The datastore is owned
// by the caller and stays open.
func (a *API) Close() error {
	return a.repo.Close()
}

// NewRouter builds a chi router with the standard middleware stack and every route registered
func (a *API) NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)

	a.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all API endpoints to the given chi router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Get("/", a.rootHandler)
	r.Get("/health", a.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Authenticator(a.tokens))

		r.Route("/stage-radiologies", func(r chi.Router) {
			r.Get("/", a.stages.ListHandler)
			r.Post("/", a.stages.CreateHandler)
			r.Get("/{id}", a.stages.GetHandler)
			r.Put("/{id}", a.stages.UpdateHandler)
			r.With(middleware.AllowContentType("application/json", "application/merge-patch+json")).
				Patch("/{id}", a.stages.PartialUpdateHandler)
			r.Delete("/{id}", a.stages.DeleteHandler)
		})
	})
}

func (a *API) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintln(w, "Stagerad web service is running!"); err != nil {
		logger.Warn().Err(err).Msg("failed to write response")
	}
}

func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.ds.Ping(r.Context()); err != nil {
		logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

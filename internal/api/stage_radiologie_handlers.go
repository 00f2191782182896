package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jbweber/homelab/stagerad/internal/domain"
	"github.com/jbweber/homelab/stagerad/internal/logger"
	"github.com/jbweber/homelab/stagerad/internal/repository"
	"github.com/jbweber/homelab/stagerad/internal/service"
)

const stageRadiologiesPath = "/api/stage-radiologies"

// StageRadiologieService defines the operations behind the internship record handlers
type StageRadiologieService interface {
	Create(ctx context.Context, record domain.StageRadiologie) (domain.StageRadiologie, error)
	Update(ctx context.Context, id int64, record domain.StageRadiologie) (domain.StageRadiologie, error)
	PartialUpdate(ctx context.Context, id int64, patch domain.StageRadiologiePatch) (domain.StageRadiologie, error)
	List(ctx context.Context, pageable repository.Pageable) (repository.Page[domain.StageRadiologie], error)
	Get(ctx context.Context, id int64) (domain.StageRadiologie, error)
	Delete(ctx context.Context, id int64) error
}

// StageRadiologies groups the internship record handlers
type StageRadiologies struct {
	svc          StageRadiologieService
	headers      *HeaderUtil
	paging       PagingOptions
	maxBodyBytes int64
}

// NewStageRadiologies creates the handler group
func NewStageRadiologies(svc StageRadiologieService, headers *HeaderUtil, paging PagingOptions, maxBodyBytes int64) *StageRadiologies {
	return &StageRadiologies{
		svc:          svc,
		headers:      headers,
		paging:       paging,
		maxBodyBytes: maxBodyBytes,
	}
}

// CreateHandler handles POST /api/stage-radiologies
func (s *StageRadiologies) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var record domain.StageRadiologie
	if !decodeJSON(w, r, s.maxBodyBytes, &record) {
		return
	}
	logger.Debug().Interface("stageRadiologie", record).Msg("REST request to save StageRadiologie")

	created, err := s.svc.Create(r.Context(), record)
	if err != nil {
		s.headers.writeError(w, r, err)
		return
	}

	id := strconv.FormatInt(*created.ID, 10)
	w.Header().Set("Location", stageRadiologiesPath+"/"+id)
	s.headers.EntityCreationAlert(w, service.EntityName, id)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateHandler handles PUT /api/stage-radiologies/{id}
func (s *StageRadiologies) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var record domain.StageRadiologie
	if !decodeJSON(w, r, s.maxBodyBytes, &record) {
		return
	}
	logger.Debug().Int64("id", id).Interface("stageRadiologie", record).Msg("REST request to update StageRadiologie")

	updated, err := s.svc.Update(r.Context(), id, record)
	if err != nil {
		s.headers.writeError(w, r, err)
		return
	}

	s.headers.EntityUpdateAlert(w, service.EntityName, strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, updated)
}

// PartialUpdateHandler handles PATCH /api/stage-radiologies/{id}
func (s *StageRadiologies) PartialUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch domain.StageRadiologiePatch
	if !decodeJSON(w, r, s.maxBodyBytes, &patch) {
		return
	}
	logger.Debug().Int64("id", id).Msg("REST request to partial update StageRadiologie partially")

	updated, err := s.svc.PartialUpdate(r.Context(), id, patch)
	if err != nil {
		s.headers.writeError(w, r, err)
		return
	}

	s.headers.EntityUpdateAlert(w, service.EntityName, strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, updated)
}

// ListHandler handles GET /api/stage-radiologies
func (s *StageRadiologies) ListHandler(w http.ResponseWriter, r *http.Request) {
	pageable := s.paging.parsePageable(r)
	logger.Debug().Int("page", pageable.Page).Int("size", pageable.Size).Msg("REST request to get a page of StageRadiologies")

	page, err := s.svc.List(r.Context(), pageable)
	if err != nil {
		s.headers.writeError(w, r, err)
		return
	}

	content := page.Content
	if content == nil {
		content = []domain.StageRadiologie{}
	}
	setPaginationHeaders(w, r.URL, page)
	writeJSON(w, http.StatusOK, content)
}

// GetHandler handles GET /api/stage-radiologies/{id}
func (s *StageRadiologies) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	logger.Debug().Int64("id", id).Msg("REST request to get StageRadiologie")

	record, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.headers.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// DeleteHandler handles DELETE /api/stage-radiologies/{id}
func (s *StageRadiologies) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	logger.Debug().Int64("id", id).Msg("REST request to delete StageRadiologie")

	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.headers.writeError(w, r, err)
		return
	}

	s.headers.EntityDeletionAlert(w, service.EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} URL parameter, writing a 400 when it is not an integer
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, r, "Invalid stageRadiologie ID")
		return 0, false
	}
	return id, true
}

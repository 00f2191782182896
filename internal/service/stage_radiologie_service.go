package service

import (
	"context"
	"fmt"

	"github.com/jbweber/homelab/stagerad/internal/domain"
	"github.com/jbweber/homelab/stagerad/internal/repository"
)

// IdentityProvider resolves the caller behind a request
type IdentityProvider interface {
	CurrentCaller(ctx context.Context) (domain.Caller, error)
}

// listAllAuthorities may see every record; other callers only see their own
var listAllAuthorities = []string{
	domain.AuthorityAdmin,
	domain.AuthorityDirectionStage,
	domain.AuthorityEncadrantReferent,
}

// StageRadiologieService mediates CRUD for internship records
type StageRadiologieService struct {
	repo     repository.StageRadiologieRepository
	identity IdentityProvider
}

// NewStageRadiologieService creates a service over the given store and identity provider
func NewStageRadiologieService(repo repository.StageRadiologieRepository, identity IdentityProvider) *StageRadiologieService {
	return &StageRadiologieService{repo: repo, identity: identity}
}

// Create persists a new record and returns it with its assigned ID
func (s *StageRadiologieService) Create(ctx context.Context, record domain.StageRadiologie) (domain.StageRadiologie, error) {
	if record.ID != nil {
		return domain.StageRadiologie{}, newValidationError("A new stageRadiologie cannot already have an ID", ErrorKeyIDExists)
	}
	return s.repo.Save(ctx, record)
}

// Update fully overwrites the record identified by id
func (s *StageRadiologieService) Update(ctx context.Context, id int64, record domain.StageRadiologie) (domain.StageRadiologie, error) {
	if err := checkIdentifiers(id, record.ID); err != nil {
		return domain.StageRadiologie{}, err
	}

	var result domain.StageRadiologie
	err := s.repo.WithinUnitOfWork(ctx, func(ctx context.Context, repo repository.StageRadiologieRepository) error {
		if err := requireExisting(ctx, repo, id); err != nil {
			return err
		}
		saved, err := repo.Save(ctx, record)
		if err != nil {
			return err
		}
		result = saved
		return nil
	})
	if err != nil {
		return domain.StageRadiologie{}, err
	}
	return result, nil
}

// PartialUpdate merges the fields present in patch into the record identified by id.
// The owner and ID are never changed.
func (s *StageRadiologieService) PartialUpdate(ctx context.Context, id int64, patch domain.StageRadiologiePatch) (domain.StageRadiologie, error) {
	if err := checkIdentifiers(id, patch.ID); err != nil {
		return domain.StageRadiologie{}, err
	}

	var result domain.StageRadiologie
	err := s.repo.WithinUnitOfWork(ctx, func(ctx context.Context, repo repository.StageRadiologieRepository) error {
		if err := requireExisting(ctx, repo, id); err != nil {
			return err
		}
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		patch.ApplyTo(&existing)
		saved, err := repo.Save(ctx, existing)
		if err != nil {
			return err
		}
		result = saved
		return nil
	})
	if err != nil {
		return domain.StageRadiologie{}, err
	}
	return result, nil
}

// List returns one page of records visible to the caller
func (s *StageRadiologieService) List(ctx context.Context, pageable repository.Pageable) (repository.Page[domain.StageRadiologie], error) {
	caller, err := s.identity.CurrentCaller(ctx)
	if err != nil {
		return repository.Page[domain.StageRadiologie]{}, err
	}

	if caller.HasAnyAuthority(listAllAuthorities...) {
		return s.repo.FindPage(ctx, pageable)
	}
	return s.repo.FindPageByUserLogin(ctx, caller.Login, pageable)
}

// Get returns the record identified by id
func (s *StageRadiologieService) Get(ctx context.Context, id int64) (domain.StageRadiologie, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes the record identified by id. A missing record is not an error.
func (s *StageRadiologieService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

func checkIdentifiers(pathID int64, bodyID *int64) error {
	if bodyID == nil {
		return newValidationError("Invalid id", ErrorKeyIDNull)
	}
	if *bodyID != pathID {
		return newValidationError("Invalid ID", ErrorKeyIDInvalid)
	}
	return nil
}

func requireExisting(ctx context.Context, repo repository.StageRadiologieRepository, id int64) error {
	exists, err := repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check stage radiologie %d: %w", id, err)
	}
	if !exists {
		return newValidationError("Entity not found", ErrorKeyIDNotFound)
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/jbweber/homelab/stagerad/internal/domain"
	"github.com/jbweber/homelab/stagerad/internal/repository"
)

// Compile-time checks
var (
	_ repository.StageRadiologieRepository = (*MockStageRadiologieRepository)(nil)
	_ IdentityProvider                     = (*MockIdentityProvider)(nil)
)

// MockStageRadiologieRepository is a func-field fake of StageRadiologieRepository
type MockStageRadiologieRepository struct {
	SaveFunc                func(ctx context.Context, s domain.StageRadiologie) (domain.StageRadiologie, error)
	FindByIDFunc            func(ctx context.Context, id int64) (domain.StageRadiologie, error)
	FindAllFunc             func(ctx context.Context) ([]domain.StageRadiologie, error)
	DeleteByIDFunc          func(ctx context.Context, id int64) error
	ExistsByIDFunc          func(ctx context.Context, id int64) (bool, error)
	FindPageFunc            func(ctx context.Context, p repository.Pageable) (repository.Page[domain.StageRadiologie], error)
	FindPageByUserLoginFunc func(ctx context.Context, login string, p repository.Pageable) (repository.Page[domain.StageRadiologie], error)

	SaveCalls       int
	UnitsOfWork     int
	FindPageCalls   int
	FindByUserCalls int
}

func (m *MockStageRadiologieRepository) Save(ctx context.Context, s domain.StageRadiologie) (domain.StageRadiologie, error) {
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return s, nil
}

func (m *MockStageRadiologieRepository) FindByID(ctx context.Context, id int64) (domain.StageRadiologie, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return domain.StageRadiologie{}, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockStageRadiologieRepository) FindAll(ctx context.Context) ([]domain.StageRadiologie, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, errors.New("FindAllFunc not implemented in mock")
}

func (m *MockStageRadiologieRepository) DeleteByID(ctx context.Context, id int64) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *MockStageRadiologieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if m.ExistsByIDFunc != nil {
		return m.ExistsByIDFunc(ctx, id)
	}
	return false, errors.New("ExistsByIDFunc not implemented in mock")
}

func (m *MockStageRadiologieRepository) FindPage(ctx context.Context, p repository.Pageable) (repository.Page[domain.StageRadiologie], error) {
	m.FindPageCalls++
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, p)
	}
	return repository.Page[domain.StageRadiologie]{Pageable: p}, nil
}

func (m *MockStageRadiologieRepository) FindPageByUserLogin(ctx context.Context, login string, p repository.Pageable) (repository.Page[domain.StageRadiologie], error) {
	m.FindByUserCalls++
	if m.FindPageByUserLoginFunc != nil {
		return m.FindPageByUserLoginFunc(ctx, login, p)
	}
	return repository.Page[domain.StageRadiologie]{Pageable: p}, nil
}

func (m *MockStageRadiologieRepository) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, repo repository.StageRadiologieRepository) error) error {
	m.UnitsOfWork++
	return fn(ctx, m)
}

func (m *MockStageRadiologieRepository) Close() error {
	return nil
}

// MockIdentityProvider returns a fixed caller or error
type MockIdentityProvider struct {
	Caller domain.Caller
	Err    error
}

func (m *MockIdentityProvider) CurrentCaller(ctx context.Context) (domain.Caller, error) {
	return m.Caller, m.Err
}

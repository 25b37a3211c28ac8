package word

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type wordRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	ListFunc            func(ctx context.Context, f domain.WordFilter) ([]domain.Word, error)
	ListBySongFunc      func(ctx context.Context, songID uuid.UUID) ([]domain.Word, error)
	CountReferencesFunc func(ctx context.Context, id uuid.UUID) (int, error)
	CreateFunc          func(ctx context.Context, w domain.Word) (*domain.Word, error)
	UpdateFunc          func(ctx context.Context, w domain.Word) (*domain.Word, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	DeleteOrphansFunc   func(ctx context.Context, threshold time.Time) ([]uuid.UUID, error)

	mu    sync.Mutex
	calls struct {
		List   []domain.WordFilter
		Create []domain.Word
		Delete []uuid.UUID
	}
}

func (m *wordRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if m.GetByIDFunc == nil {
		panic("wordRepoMock.GetByIDFunc: method is nil but wordRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *wordRepoMock) List(ctx context.Context, f domain.WordFilter) ([]domain.Word, error) {
	if m.ListFunc == nil {
		panic("wordRepoMock.ListFunc: method is nil but wordRepo.List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, f)
	m.mu.Unlock()
	return m.ListFunc(ctx, f)
}

// ListCalls returns the filters List was called with.
func (m *wordRepoMock) ListCalls() []domain.WordFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.List
}

func (m *wordRepoMock) ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Word, error) {
	if m.ListBySongFunc == nil {
		panic("wordRepoMock.ListBySongFunc: method is nil but wordRepo.ListBySong was just called")
	}
	return m.ListBySongFunc(ctx, songID)
}

func (m *wordRepoMock) CountReferences(ctx context.Context, id uuid.UUID) (int, error) {
	if m.CountReferencesFunc == nil {
		panic("wordRepoMock.CountReferencesFunc: method is nil but wordRepo.CountReferences was just called")
	}
	return m.CountReferencesFunc(ctx, id)
}

func (m *wordRepoMock) Create(ctx context.Context, w domain.Word) (*domain.Word, error) {
	if m.CreateFunc == nil {
		panic("wordRepoMock.CreateFunc: method is nil but wordRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, w)
	m.mu.Unlock()
	return m.CreateFunc(ctx, w)
}

// CreateCalls returns the words Create was called with.
func (m *wordRepoMock) CreateCalls() []domain.Word {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *wordRepoMock) Update(ctx context.Context, w domain.Word) (*domain.Word, error) {
	if m.UpdateFunc == nil {
		panic("wordRepoMock.UpdateFunc: method is nil but wordRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, w)
}

func (m *wordRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("wordRepoMock.DeleteFunc: method is nil but wordRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

// DeleteCalls returns the ids Delete was called with.
func (m *wordRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}

func (m *wordRepoMock) DeleteOrphansBefore(ctx context.Context, threshold time.Time) ([]uuid.UUID, error) {
	if m.DeleteOrphansFunc == nil {
		panic("wordRepoMock.DeleteOrphansFunc: method is nil but wordRepo.DeleteOrphansBefore was just called")
	}
	return m.DeleteOrphansFunc(ctx, threshold)
}

type songRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Song, error)
}

func (m *songRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	if m.GetByIDFunc == nil {
		panic("songRepoMock.GetByIDFunc: method is nil but songRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}

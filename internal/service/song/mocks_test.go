package song

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type songRepoMock struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	ListFunc                func(ctx context.Context) ([]domain.Song, error)
	ExistsByTitleExceptFunc func(ctx context.Context, title string, exceptID uuid.UUID) (bool, error)
	CreateFunc              func(ctx context.Context, title string, titleKorean *string) (*domain.Song, error)
	UpdateFunc              func(ctx context.Context, id uuid.UUID, title string, titleKorean *string) (*domain.Song, error)
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error

	mu          sync.Mutex
	createCalls int
	deleteCalls []uuid.UUID
}

func (m *songRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	if m.GetByIDFunc == nil {
		panic("songRepoMock.GetByIDFunc: method is nil but songRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *songRepoMock) List(ctx context.Context) ([]domain.Song, error) {
	if m.ListFunc == nil {
		panic("songRepoMock.ListFunc: method is nil but songRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *songRepoMock) ExistsByTitleExcept(ctx context.Context, title string, exceptID uuid.UUID) (bool, error) {
	if m.ExistsByTitleExceptFunc == nil {
		panic("songRepoMock.ExistsByTitleExceptFunc: method is nil but songRepo.ExistsByTitleExcept was just called")
	}
	return m.ExistsByTitleExceptFunc(ctx, title, exceptID)
}

func (m *songRepoMock) Create(ctx context.Context, title string, titleKorean *string) (*domain.Song, error) {
	if m.CreateFunc == nil {
		panic("songRepoMock.CreateFunc: method is nil but songRepo.Create was just called")
	}
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	return m.CreateFunc(ctx, title, titleKorean)
}

func (m *songRepoMock) Update(ctx context.Context, id uuid.UUID, title string, titleKorean *string) (*domain.Song, error) {
	if m.UpdateFunc == nil {
		panic("songRepoMock.UpdateFunc: method is nil but songRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, id, title, titleKorean)
}

func (m *songRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("songRepoMock.DeleteFunc: method is nil but songRepo.Delete was just called")
	}
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

type sentenceRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Sentence, error)
	ListBySongFunc    func(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error)
	NextOrderFunc     func(ctx context.Context, songID uuid.UUID) (int, error)
	CreateFunc        func(ctx context.Context, s domain.Sentence) (*domain.Sentence, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	WordIDsFunc       func(ctx context.Context, sentenceID uuid.UUID) ([]uuid.UUID, error)
	WordIDsBySongFunc func(ctx context.Context, songID uuid.UUID) ([]uuid.UUID, error)
	NextLinkOrderFunc func(ctx context.Context, sentenceID uuid.UUID) (int, error)
	LinkFunc          func(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error)
	DeleteLinksFunc   func(ctx context.Context, sentenceID uuid.UUID) (int, error)

	mu    sync.Mutex
	order []string
}

func (m *sentenceRepoMock) record(call string) {
	m.mu.Lock()
	m.order = append(m.order, call)
	m.mu.Unlock()
}

// Calls returns the mutating calls in the order they happened.
func (m *sentenceRepoMock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order
}

func (m *sentenceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sentence, error) {
	if m.GetByIDFunc == nil {
		panic("sentenceRepoMock.GetByIDFunc: method is nil but sentenceRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *sentenceRepoMock) ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error) {
	if m.ListBySongFunc == nil {
		panic("sentenceRepoMock.ListBySongFunc: method is nil but sentenceRepo.ListBySong was just called")
	}
	return m.ListBySongFunc(ctx, songID)
}

func (m *sentenceRepoMock) NextOrder(ctx context.Context, songID uuid.UUID) (int, error) {
	if m.NextOrderFunc == nil {
		panic("sentenceRepoMock.NextOrderFunc: method is nil but sentenceRepo.NextOrder was just called")
	}
	return m.NextOrderFunc(ctx, songID)
}

func (m *sentenceRepoMock) Create(ctx context.Context, s domain.Sentence) (*domain.Sentence, error) {
	if m.CreateFunc == nil {
		panic("sentenceRepoMock.CreateFunc: method is nil but sentenceRepo.Create was just called")
	}
	m.record("Create")
	return m.CreateFunc(ctx, s)
}

func (m *sentenceRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("sentenceRepoMock.DeleteFunc: method is nil but sentenceRepo.Delete was just called")
	}
	m.record("Delete")
	return m.DeleteFunc(ctx, id)
}

func (m *sentenceRepoMock) WordIDs(ctx context.Context, sentenceID uuid.UUID) ([]uuid.UUID, error) {
	if m.WordIDsFunc == nil {
		panic("sentenceRepoMock.WordIDsFunc: method is nil but sentenceRepo.WordIDs was just called")
	}
	m.record("WordIDs")
	return m.WordIDsFunc(ctx, sentenceID)
}

func (m *sentenceRepoMock) WordIDsBySong(ctx context.Context, songID uuid.UUID) ([]uuid.UUID, error) {
	if m.WordIDsBySongFunc == nil {
		panic("sentenceRepoMock.WordIDsBySongFunc: method is nil but sentenceRepo.WordIDsBySong was just called")
	}
	m.record("WordIDsBySong")
	return m.WordIDsBySongFunc(ctx, songID)
}

func (m *sentenceRepoMock) NextLinkOrder(ctx context.Context, sentenceID uuid.UUID) (int, error) {
	if m.NextLinkOrderFunc == nil {
		panic("sentenceRepoMock.NextLinkOrderFunc: method is nil but sentenceRepo.NextLinkOrder was just called")
	}
	return m.NextLinkOrderFunc(ctx, sentenceID)
}

func (m *sentenceRepoMock) Link(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error) {
	if m.LinkFunc == nil {
		panic("sentenceRepoMock.LinkFunc: method is nil but sentenceRepo.Link was just called")
	}
	m.record("Link")
	return m.LinkFunc(ctx, sentenceID, wordID, order)
}

func (m *sentenceRepoMock) DeleteLinks(ctx context.Context, sentenceID uuid.UUID) (int, error) {
	if m.DeleteLinksFunc == nil {
		panic("sentenceRepoMock.DeleteLinksFunc: method is nil but sentenceRepo.DeleteLinks was just called")
	}
	m.record("DeleteLinks")
	return m.DeleteLinksFunc(ctx, sentenceID)
}

type wordRepoMock struct {
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	DeleteUnreferencedFunc func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	mu       sync.Mutex
	gcInputs [][]uuid.UUID
}

func (m *wordRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if m.GetByIDFunc == nil {
		panic("wordRepoMock.GetByIDFunc: method is nil but wordRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *wordRepoMock) DeleteUnreferenced(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.DeleteUnreferencedFunc == nil {
		panic("wordRepoMock.DeleteUnreferencedFunc: method is nil but wordRepo.DeleteUnreferenced was just called")
	}
	m.mu.Lock()
	m.gcInputs = append(m.gcInputs, ids)
	m.mu.Unlock()
	return m.DeleteUnreferencedFunc(ctx, ids)
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

type metricsMock struct {
	mu        sync.Mutex
	collected map[string]int
}

func (m *metricsMock) RecordCollected(_ context.Context, trigger string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collected == nil {
		m.collected = make(map[string]int)
	}
	m.collected[trigger] += n
}

package lyrics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

// ---------------------------------------------------------------------------
// songRepoMock
// ---------------------------------------------------------------------------

type songRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	GetByTitleFunc func(ctx context.Context, title string) (*domain.Song, error)
	CreateFunc     func(ctx context.Context, title string, titleKorean *string) (*domain.Song, error)

	mu          sync.Mutex
	createCalls []string
}

func (m *songRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	if m.GetByIDFunc == nil {
		panic("songRepoMock.GetByIDFunc: method is nil but songRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *songRepoMock) GetByTitle(ctx context.Context, title string) (*domain.Song, error) {
	if m.GetByTitleFunc == nil {
		panic("songRepoMock.GetByTitleFunc: method is nil but songRepo.GetByTitle was just called")
	}
	return m.GetByTitleFunc(ctx, title)
}

func (m *songRepoMock) Create(ctx context.Context, title string, titleKorean *string) (*domain.Song, error) {
	if m.CreateFunc == nil {
		panic("songRepoMock.CreateFunc: method is nil but songRepo.Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, title)
	m.mu.Unlock()
	return m.CreateFunc(ctx, title, titleKorean)
}

func (m *songRepoMock) CreateCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// ---------------------------------------------------------------------------
// sentenceRepoMock
// ---------------------------------------------------------------------------

type linkCall struct {
	SentenceID uuid.UUID
	WordID     uuid.UUID
	Order      int
}

type sentenceRepoMock struct {
	ListBySongFunc func(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error)
	NextOrderFunc  func(ctx context.Context, songID uuid.UUID) (int, error)
	CreateFunc     func(ctx context.Context, s domain.Sentence) (*domain.Sentence, error)
	LinkFunc       func(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error)

	mu          sync.Mutex
	createCalls []domain.Sentence
	linkCalls   []linkCall
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
	m.mu.Lock()
	m.createCalls = append(m.createCalls, s)
	m.mu.Unlock()
	return m.CreateFunc(ctx, s)
}

func (m *sentenceRepoMock) Link(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error) {
	if m.LinkFunc == nil {
		panic("sentenceRepoMock.LinkFunc: method is nil but sentenceRepo.Link was just called")
	}
	m.mu.Lock()
	m.linkCalls = append(m.linkCalls, linkCall{SentenceID: sentenceID, WordID: wordID, Order: order})
	m.mu.Unlock()
	return m.LinkFunc(ctx, sentenceID, wordID, order)
}

func (m *sentenceRepoMock) CreateCalls() []domain.Sentence {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *sentenceRepoMock) LinkCalls() []linkCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linkCalls
}

// ---------------------------------------------------------------------------
// wordRepoMock
// ---------------------------------------------------------------------------

type wordRepoMock struct {
	FindByKeyFunc func(ctx context.Context, original string, reading *string) (*domain.Word, error)
	CreateFunc    func(ctx context.Context, w domain.Word) (*domain.Word, error)

	mu             sync.Mutex
	findByKeyCalls []domain.WordKey
	createCalls    []domain.Word
}

func (m *wordRepoMock) FindByKey(ctx context.Context, original string, reading *string) (*domain.Word, error) {
	if m.FindByKeyFunc == nil {
		panic("wordRepoMock.FindByKeyFunc: method is nil but wordRepo.FindByKey was just called")
	}
	m.mu.Lock()
	m.findByKeyCalls = append(m.findByKeyCalls, domain.NewWordKey(original, reading))
	m.mu.Unlock()
	return m.FindByKeyFunc(ctx, original, reading)
}

func (m *wordRepoMock) Create(ctx context.Context, w domain.Word) (*domain.Word, error) {
	if m.CreateFunc == nil {
		panic("wordRepoMock.CreateFunc: method is nil but wordRepo.Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, w)
	m.mu.Unlock()
	return m.CreateFunc(ctx, w)
}

func (m *wordRepoMock) FindByKeyCalls() []domain.WordKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findByKeyCalls
}

func (m *wordRepoMock) CreateCalls() []domain.Word {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// ---------------------------------------------------------------------------
// batchWordRepoMock (dataloader)
// ---------------------------------------------------------------------------

type batchWordRepoMock struct {
	ListBySentenceIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]word.WordWithSentenceID, error)
}

func (m *batchWordRepoMock) ListBySentenceIDs(ctx context.Context, ids []uuid.UUID) ([]word.WordWithSentenceID, error) {
	if m.ListBySentenceIDsFunc == nil {
		panic("batchWordRepoMock.ListBySentenceIDsFunc: method is nil but ListBySentenceIDs was just called")
	}
	return m.ListBySentenceIDsFunc(ctx, ids)
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ---------------------------------------------------------------------------
// metricsMock
// ---------------------------------------------------------------------------

type metricsMock struct {
	mu         sync.Mutex
	imports    []domain.ImportResult
	ingestions []error
}

func (m *metricsMock) RecordImport(_ context.Context, r domain.ImportResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imports = append(m.imports, r)
}

func (m *metricsMock) RecordIngestion(_ context.Context, _ ingestion.Usage, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingestions = append(m.ingestions, err)
}

// ---------------------------------------------------------------------------
// sourceMock, annotatorMock, fetcherMock
// ---------------------------------------------------------------------------

type sourceMock struct {
	AnalyzeFunc func(ctx context.Context, req ingestion.Request) (ingestion.Response, error)

	mu    sync.Mutex
	calls []ingestion.Request
}

func (m *sourceMock) Analyze(ctx context.Context, req ingestion.Request) (ingestion.Response, error) {
	if m.AnalyzeFunc == nil {
		panic("sourceMock.AnalyzeFunc: method is nil but Source.Analyze was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	return m.AnalyzeFunc(ctx, req)
}

func (m *sourceMock) AnalyzeCalls() []ingestion.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type annotatorMock struct {
	AnnotateFunc func(doc *domain.LyricsDocument) ingestion.AnnotationStats
}

func (m *annotatorMock) Annotate(doc *domain.LyricsDocument) ingestion.AnnotationStats {
	if m.AnnotateFunc == nil {
		panic("annotatorMock.AnnotateFunc: method is nil but annotator.Annotate was just called")
	}
	return m.AnnotateFunc(doc)
}

type fetcherMock struct {
	FetchFunc func(ctx context.Context, url string) (*ingestion.Page, error)
}

func (m *fetcherMock) Fetch(ctx context.Context, url string) (*ingestion.Page, error) {
	if m.FetchFunc == nil {
		panic("fetcherMock.FetchFunc: method is nil but pageFetcher.Fetch was just called")
	}
	return m.FetchFunc(ctx, url)
}

package services

import (
	"context"

	"github.com/junyi/vocabflash/internal/errors"
	"github.com/junyi/vocabflash/internal/jobs"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
	"github.com/junyi/vocabflash/internal/vocab"
	"github.com/junyi/vocabflash/internal/vocabsource"
)

// ImportSummary reports the outcome of a synchronous import.
type ImportSummary struct {
	Imported  int      `json:"imported"`
	Rejected  int      `json:"rejected"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// VocabService handles vocabulary management: file imports, remote set
// imports and catalog queries.
type VocabService interface {
	Import(ctx context.Context, path string) (*ImportSummary, error)
	EnqueueImport(ctx context.Context, path string) (string, error)
	ListRemoteSets(ctx context.Context) ([]vocabsource.SetInfo, error)
	ImportRemoteSet(ctx context.Context, setID string) (*ImportSummary, error)
	List(ctx context.Context, filter models.VocabularyFilter) ([]models.Vocabulary, int, error)
	Get(ctx context.Context, id int64) (*models.Vocabulary, error)
}

type vocabService struct {
	vocabs repository.VocabularyRepository
	loader *vocab.Loader
	source vocabsource.ClientInterface
	queue  jobs.JobQueue
}

// NewVocabService creates a new VocabService. source may be nil when no
// remote vocabulary source is configured.
func NewVocabService(vocabs repository.VocabularyRepository, loader *vocab.Loader, source vocabsource.ClientInterface, queue jobs.JobQueue) VocabService {
	return &vocabService{vocabs: vocabs, loader: loader, source: source, queue: queue}
}

// Import loads a vocabulary file and upserts every valid word, synchronously.
func (s *vocabService) Import(ctx context.Context, path string) (*ImportSummary, error) {
	log := logger.FromContext(ctx)
	log.Info("importing vocabulary file: %s", path)

	result, err := s.loader.Load(path)
	if err != nil {
		log.Error("failed to load vocabulary file: %v", err)
		return nil, errors.NewBadRequestError(err.Error())
	}

	return s.upsertAll(ctx, result)
}

// EnqueueImport schedules a background import and returns its job ID.
func (s *vocabService) EnqueueImport(ctx context.Context, path string) (string, error) {
	log := logger.FromContext(ctx)
	log.Info("enqueueing vocabulary import: %s", path)

	jobID, err := s.queue.EnqueueImport(path)
	if err != nil {
		log.Error("failed to enqueue import: %v", err)
		return "", errors.NewInternalError(err)
	}
	return jobID, nil
}

func (s *vocabService) ListRemoteSets(ctx context.Context) ([]vocabsource.SetInfo, error) {
	log := logger.FromContext(ctx)

	if s.source == nil {
		return nil, errors.NewBadRequestError("no remote vocabulary source configured")
	}

	sets, err := s.source.ListSets(ctx)
	if err != nil {
		log.Error("failed to list remote sets: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return sets, nil
}

// ImportRemoteSet downloads a published word set and upserts its words.
func (s *vocabService) ImportRemoteSet(ctx context.Context, setID string) (*ImportSummary, error) {
	log := logger.FromContext(ctx)
	log.Info("importing remote word set: %s", setID)

	if s.source == nil {
		return nil, errors.NewBadRequestError("no remote vocabulary source configured")
	}

	set, err := s.source.FetchSet(ctx, setID)
	if err != nil {
		log.Error("failed to fetch remote set: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.upsertAll(ctx, vocab.NormalizeSet(set))
}

func (s *vocabService) List(ctx context.Context, filter models.VocabularyFilter) ([]models.Vocabulary, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing vocabularies: category=%s, search=%s", filter.Category, filter.Search)

	words, err := s.vocabs.List(ctx, filter)
	if err != nil {
		log.Error("failed to list vocabularies: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.vocabs.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count vocabularies: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return words, total, nil
}

func (s *vocabService) Get(ctx context.Context, id int64) (*models.Vocabulary, error) {
	log := logger.FromContext(ctx)

	v, err := s.vocabs.Get(ctx, id)
	if err != nil {
		log.Error("failed to get vocabulary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if v == nil {
		return nil, errors.NewNotFoundError("vocabulary", id)
	}
	return v, nil
}

func (s *vocabService) upsertAll(ctx context.Context, result *vocab.Result) (*ImportSummary, error) {
	log := logger.FromContext(ctx)

	summary := &ImportSummary{RowErrors: result.RowErrors, Rejected: len(result.RowErrors)}
	for _, v := range result.Words {
		if _, err := s.vocabs.Upsert(ctx, v); err != nil {
			log.Error("failed to upsert word %q: %v", v.Word, err)
			return nil, errors.NewInternalError(err)
		}
		summary.Imported++
	}

	log.Info("import finished: %d words imported, %d rejected", summary.Imported, summary.Rejected)
	return summary, nil
}

package jobs

import (
	"github.com/google/uuid"

	"github.com/junyi/vocabflash/internal/repository"
	"github.com/junyi/vocabflash/internal/vocab"
	"github.com/junyi/vocabflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool   *worker.Pool
	loader *vocab.Loader
	vocabs repository.VocabularyRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, loader *vocab.Loader, vocabs repository.VocabularyRepository) JobQueue {
	return &WorkerQueue{pool: pool, loader: loader, vocabs: vocabs}
}

func (q *WorkerQueue) EnqueueImport(path string) (string, error) {
	jobID := uuid.NewString()
	err := q.pool.Submit(&worker.ImportVocabularyJob{
		JobID:  jobID,
		Path:   path,
		Loader: q.loader,
		Vocabs: q.vocabs,
	})
	if err != nil {
		return "", err
	}
	return jobID, nil
}

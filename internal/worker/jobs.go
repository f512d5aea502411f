package worker

import (
	"context"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/repository"
	"github.com/junyi/vocabflash/internal/vocab"
)

// ImportVocabularyJob loads a vocabulary file and upserts its words.
type ImportVocabularyJob struct {
	JobID  string
	Path   string
	Loader *vocab.Loader
	Vocabs repository.VocabularyRepository
}

func (j *ImportVocabularyJob) Name() string { return "import_vocabulary" }

func (j *ImportVocabularyJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"job_id": j.JobID,
		"path":   j.Path,
	})
	log.Info("starting background vocabulary import")

	result, err := j.Loader.Load(j.Path)
	if err != nil {
		log.Error("failed to load vocabulary file: %v", err)
		return err
	}
	for _, rowErr := range result.RowErrors {
		log.Warn("skipped row: %s", rowErr)
	}

	imported := 0
	for _, v := range result.Words {
		if ctx.Err() != nil {
			log.Warn("import cancelled: %v", ctx.Err())
			return ctx.Err()
		}
		if _, err := j.Vocabs.Upsert(ctx, v); err != nil {
			log.Error("failed to upsert word %q: %v", v.Word, err)
			continue
		}
		imported++
	}

	log.Info("imported %d words (%d rows rejected)", imported, len(result.RowErrors))
	return nil
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/junyi/vocabflash/internal/errors"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
)

type importRequest struct {
	Path  string `json:"path"`
	Async bool   `json:"async,omitempty"`
}

func (s *Server) handleListVocabularies(w http.ResponseWriter, r *http.Request) {
	filter := models.VocabularyFilter{
		Category:      r.URL.Query().Get("category"),
		Search:        r.URL.Query().Get("search"),
		MinDifficulty: queryInt(r, "min_difficulty", 0),
		MaxDifficulty: queryInt(r, "max_difficulty", 0),
		Limit:         queryInt(r, "limit", 50),
		Offset:        queryInt(r, "offset", 0),
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	words, total, err := s.Vocabs.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"vocabularies": words,
		"total":        total,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})
}

func (s *Server) handleGetVocabulary(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	v, err := s.Vocabs.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, v)
}

// handleImportVocabulary imports a vocabulary file. With async=true the file
// is queued on the worker pool and a job ID is returned immediately.
func (s *Server) handleImportVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Path == "" {
		handleError(w, r, errors.NewValidationError("path", "must not be empty"))
		return
	}

	if req.Async {
		jobID, err := s.Vocabs.EnqueueImport(r.Context(), req.Path)
		if err != nil {
			handleError(w, r, err)
			return
		}
		log.Info("import queued: job_id=%s, pending=%d", jobID, s.ImportPool.QueueSize())
		respondJSON(w, r, http.StatusAccepted, map[string]any{"job_id": jobID})
		return
	}

	summary, err := s.Vocabs.Import(r.Context(), req.Path)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleListRemoteSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.Vocabs.ListRemoteSets(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"sets": sets})
}

func (s *Server) handleImportRemoteSet(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setID")
	if setID == "" {
		handleError(w, r, errors.NewValidationError("setID", "must not be empty"))
		return
	}

	summary, err := s.Vocabs.ImportRemoteSet(r.Context(), setID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

package api

import (
	"net/http"

	"github.com/junyi/vocabflash/internal/errors"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
)

type submitAnswerRequest struct {
	VocabularyID int64  `json:"vocabulary_id"`
	Feedback     string `json:"feedback"`
	SessionID    int64  `json:"session_id,omitempty"`
}

func (s *Server) handleStudyQueue(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	maxNew := queryInt(r, "max_new", s.MaxNewPerSession)
	maxReview := queryInt(r, "max_review", s.MaxReviewPerSession)

	items, err := s.Study.StudyQueue(r.Context(), userID, maxNew, maxReview)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.VocabularyID <= 0 {
		handleError(w, r, errors.NewValidationError("vocabulary_id", "must be positive"))
		return
	}
	feedback, err := models.ParseMemoryStatus(req.Feedback)
	if err != nil {
		handleError(w, r, errors.NewValidationError("feedback", "must be 'easy', 'medium' or 'hard'"))
		return
	}

	result, err := s.Study.SubmitAnswer(r.Context(), userID, req.VocabularyID, req.SessionID, feedback)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("answer accepted: user_id=%d, vocabulary_id=%d", userID, req.VocabularyID)
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.Study.UserStats(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	days := queryInt(r, "days", s.ForecastDays)
	if days < 0 {
		days = s.ForecastDays
	}

	load, err := s.Study.ReviewForecast(r.Context(), userID, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"days": days,
		"load": load,
	})
}

func (s *Server) handleMistakeBook(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	entries, err := s.Study.MistakeBook(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleRemoveMistake(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	entryID, err := urlParamInt64(r, "entryID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Study.RemoveMistake(r.Context(), userID, entryID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.Study.StartSession(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID, err := urlParamInt64(r, "sessionID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.Study.EndSession(r.Context(), userID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

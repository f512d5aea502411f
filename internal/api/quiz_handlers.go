package api

import (
	"net/http"

	"github.com/junyi/vocabflash/internal/services"
)

type submitQuizRequest struct {
	Results []services.QuizResult `json:"results"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	size := queryInt(r, "size", 0)
	questions, err := s.Quiz.GenerateQuiz(r.Context(), userID, size)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"questions": questions,
		"count":     len(questions),
	})
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	outcome, err := s.Quiz.SubmitResults(r.Context(), userID, req.Results)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, outcome)
}

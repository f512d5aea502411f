package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Delete("/", s.handleDeleteUser)

				r.Get("/queue", s.handleStudyQueue)
				r.Post("/answers", s.handleSubmitAnswer)
				r.Get("/stats", s.handleUserStats)
				r.Get("/forecast", s.handleForecast)

				r.Get("/mistakes", s.handleMistakeBook)
				r.Delete("/mistakes/{entryID}", s.handleRemoveMistake)

				r.Post("/sessions", s.handleStartSession)
				r.Post("/sessions/{sessionID}/end", s.handleEndSession)

				r.Get("/quiz", s.handleGenerateQuiz)
				r.Post("/quiz", s.handleSubmitQuiz)
			})
		})

		r.Route("/vocabularies", func(r chi.Router) {
			r.Get("/", s.handleListVocabularies)
			r.Get("/{id}", s.handleGetVocabulary)
			r.Post("/import", s.handleImportVocabulary)
			r.Get("/sets", s.handleListRemoteSets)
			r.Post("/sets/{setID}/import", s.handleImportRemoteSet)
		})
	})

	return r
}

package api

import (
	"github.com/junyi/vocabflash/internal/db"
	"github.com/junyi/vocabflash/internal/services"
	"github.com/junyi/vocabflash/internal/worker"
)

// Server holds the HTTP layer's dependencies. Handlers translate requests
// into service calls and service results into JSON.
type Server struct {
	DB         *db.DB
	Users      services.UserService
	Study      services.StudyService
	Quiz       services.QuizService
	Vocabs     services.VocabService
	ImportPool *worker.Pool

	MaxNewPerSession    int
	MaxReviewPerSession int
	ForecastDays        int
}

// Package scheduler runs the periodic review reminder: a recurring job that
// checks every user's due pile and logs a summary. It is the hook point for
// future notification channels.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/repository"
	"github.com/junyi/vocabflash/internal/srs"
)

type Scheduler struct {
	cron    *gocron.Scheduler
	users   repository.UserRepository
	records repository.RecordRepository
	engine  *srs.Engine
	every   time.Duration
	log     *logger.Logger
}

// New creates a reminder scheduler that fires every interval.
func New(users repository.UserRepository, records repository.RecordRepository, engine *srs.Engine, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		cron:    gocron.NewScheduler(time.UTC),
		users:   users,
		records: records,
		engine:  engine,
		every:   interval,
		log:     logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the reminder job and begins running it asynchronously.
func (s *Scheduler) Start() error {
	s.log.Info("starting review reminder, interval=%v", s.every)
	if _, err := s.cron.Every(s.every).Do(s.remind); err != nil {
		return err
	}
	s.cron.StartAsync()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.log.Info("stopping review reminder")
	s.cron.Stop()
}

func (s *Scheduler) remind() {
	ctx := logger.NewContext(context.Background(), s.log)
	now := time.Now()

	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("failed to list users: %v", err)
		return
	}

	for _, u := range users {
		records, err := s.records.ListByUser(ctx, u.ID)
		if err != nil {
			s.log.Error("failed to list records for user %d: %v", u.ID, err)
			continue
		}

		due := len(s.engine.DueRecords(records, now, 0))
		if due == 0 {
			continue
		}

		load := s.engine.EstimateLoad(records, now, 1)
		s.log.Info("user %q has %d words due for review (%d more due tomorrow)", u.Name, due, load[1])
	}
}

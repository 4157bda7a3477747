package scheduler

import (
	"context"
	"log"

	"rotationhub/internal/db"
	"rotationhub/internal/publisher"

	"github.com/robfig/cron/v3"
)

// republishSpec controls how often retained active-rotation messages are
// re-emitted. Covers broker restarts and publishes lost while offline.
const republishSpec = "@every 5m"

// Scheduler manages periodic background jobs
type Scheduler struct {
	cron      *cron.Cron
	db        *db.DB
	publisher *publisher.Publisher
}

// NewScheduler creates a scheduler
func NewScheduler(dbConn *db.DB, pub *publisher.Publisher) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		db:        dbConn,
		publisher: pub,
	}
}

// Start registers the periodic jobs and starts the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(republishSpec, s.republishActive); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("SCHEDULER: Cron scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("SCHEDULER: Cron scheduler stopped")
}

// AddJob adds a cron job and returns the entry ID
func (s *Scheduler) AddJob(spec string, fn func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, fn)
}

func (s *Scheduler) republishActive() {
	rotations, err := s.db.GetActiveRotations(context.Background())
	if err != nil {
		log.Printf("SCHEDULER: Failed to load active rotations: %v", err)
		return
	}
	s.publisher.RepublishAll(rotations)
}

package worker

import (
	"context"
	"log"
	"sync"
	"time"
)

// JobScheduler submits its jobs to a pool on every tick.
type JobScheduler struct {
	Name     string
	Interval time.Duration
	// RunNow submits the jobs once at start, before the first tick.
	RunNow bool
	Pool   Pool

	mu   sync.RWMutex
	jobs []Job
}

func NewJobScheduler(name string, interval time.Duration, pool Pool) *JobScheduler {
	return &JobScheduler{
		Name:     name,
		Interval: interval,
		Pool:     pool,
		jobs:     make([]Job, 0),
	}
}

func (s *JobScheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

func (s *JobScheduler) Run(ctx context.Context) {
	log.Printf("[Scheduler %s] Running every %v.\n", s.Name, s.Interval)
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	if s.RunNow {
		s.submitJobs(ctx)
	}

	for {
		select {
		case <-ticker.C:
			log.Printf("[Scheduler %s] Ticker fired. Submitting jobs.\n", s.Name)
			s.submitJobs(ctx)

		case <-ctx.Done():
			log.Printf("[Scheduler %s] Shutting down.\n", s.Name)
			return
		}
	}
}

func (s *JobScheduler) submitJobs(ctx context.Context) {
	s.mu.RLock()
	jobsToRun := make([]Job, len(s.jobs))
	copy(jobsToRun, s.jobs)
	s.mu.RUnlock()

	for _, job := range jobsToRun {
		submitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := s.Pool.SubmitJob(submitCtx, job); err != nil {
			log.Printf("[Scheduler %s] FAILED to submit job: %v\n", s.Name, err)
		}
		cancel()
	}
}

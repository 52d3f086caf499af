package worker

import (
	"context"
	"errors"
	"sync"
)

type Job func(ctx context.Context) error

// ErrPoolClosed is returned when a job is submitted after shutdown began.
var ErrPoolClosed = errors.New("working pool is closed")

type Pool interface {
	Start(ctx context.Context, managerWg *sync.WaitGroup)
	SubmitJob(ctx context.Context, job Job) error
	GetName() string
	// Stats returns the number of completed and failed jobs so far.
	Stats() (completed, failed int64)
}

package worker

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

type WorkingPool struct {
	Name       string
	NumWorkers int
	jobChan    chan Job

	closeOnce sync.Once
	closed    chan struct{}

	completed atomic.Int64
	failed    atomic.Int64
}

func NewWorkingPool(name string, numWorkers int, queueSize int) *WorkingPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkingPool{
		Name:       name,
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
		closed:     make(chan struct{}),
	}
}

func (p *WorkingPool) GetName() string {
	return p.Name
}

// SubmitJob queues a job, waiting for room until ctx is done.
func (p *WorkingPool) SubmitJob(ctx context.Context, job Job) error {
	select {
	case <-p.closed:
		return ErrPoolClosed
	default:
	}

	select {
	case p.jobChan <- job:
		return nil
	case <-p.closed:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(ctx, &workerWg, i+1)
	}

	<-ctx.Done()

	log.Printf("[WorkingPool %s] Shutdown signaled. Refusing new jobs.\n", p.Name)
	p.closeOnce.Do(func() { close(p.closed) })

	workerWg.Wait()
	log.Printf("[WorkingPool %s] All workers stopped. completed=%d failed=%d\n",
		p.Name, p.completed.Load(), p.failed.Load())
}

func (p *WorkingPool) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()
	log.Printf("[WorkingPool %s-Worker %d] Started and waiting for jobs.\n", p.Name, id)

	for {
		select {
		case job := <-p.jobChan:
			p.safeExecution(ctx, job, id)

		case <-ctx.Done():
			log.Printf("[WorkingPool %s-Worker %d] Context canceled. Exiting.\n", p.Name, id)
			return
		}
	}
}

func (p *WorkingPool) Stats() (completed, failed int64) {
	return p.completed.Load(), p.failed.Load()
}

func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			log.Printf("[WorkingPool %s-Worker %d] FATAL: Panic recovered in job: %v\n", p.Name, workerID, r)
		}
	}()

	if err := job(ctx); err != nil {
		p.failed.Add(1)
		log.Printf("[WorkingPool %s-Worker %d] Error executing job: %s.\n", p.Name, workerID, err)
		return
	}
	p.completed.Add(1)
}

package worker

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerManager owns the lifecycle of the pools and schedulers.
type WorkerManager struct {
	pools map[string]Pool
	wg    *sync.WaitGroup
	mu    sync.RWMutex

	managerContext context.Context
	managerCancel  context.CancelFunc
}

func NewWorkerManager() *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		wg:             new(sync.WaitGroup),
		managerContext: ctx,
		managerCancel:  cancel,
		pools:          make(map[string]Pool),
	}
}

// StartPool runs the pool until Shutdown. A second pool with the same name is
// ignored.
func (m *WorkerManager) StartPool(pool Pool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := pool.GetName()
	if _, exists := m.pools[name]; exists {
		slog.Warn("Pool already exists, skipping start", "pool_name", name)
		return
	}
	slog.Info("Starting pool", "pool_name", name)
	m.pools[name] = pool
	m.wg.Add(1)
	go pool.Start(m.managerContext, m.wg)
}

// StartScheduler runs the scheduler until Shutdown.
func (m *WorkerManager) StartScheduler(s *JobScheduler) {
	slog.Info("Starting scheduler", "scheduler_name", s.Name, "interval", s.Interval)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		s.Run(m.managerContext)
	}()
}

func (m *WorkerManager) Shutdown() {
	slog.Info("Worker manager initiating shutdown")
	m.managerCancel()
	m.wg.Wait()
	slog.Info("Worker manager shutdown complete")
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"recommendation-service/internal/event"
	"recommendation-service/internal/worker"
)

type DBPinger interface {
	PingContext(ctx context.Context) error
}

type PublisherHealthReporter interface {
	HealthCheck() event.PublisherHealthStatus
}

type PoolHealth struct {
	Name      string `json:"name"`
	Completed int64  `json:"completed"`
	Failed    int64  `json:"failed"`
}

type HealthStatus struct {
	Service   string                      `json:"service"`
	Database  string                      `json:"database"`
	Publisher event.PublisherHealthStatus `json:"publisher"`
	Pools     []PoolHealth                `json:"pools"`
}

// HealthHandler serves /checkhealth. Only the database decides the status code;
// the publisher and pools are reported for inspection.
type HealthHandler struct {
	db        DBPinger
	publisher PublisherHealthReporter
	pools     []worker.Pool
}

func NewHealthHandler(db DBPinger, publisher PublisherHealthReporter, pools ...worker.Pool) *HealthHandler {
	return &HealthHandler{db: db, publisher: publisher, pools: pools}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/checkhealth", h.CheckHealth)
}

func (h *HealthHandler) CheckHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Service:   "recommendation-service",
		Database:  "up",
		Publisher: h.publisher.HealthCheck(),
		Pools:     make([]PoolHealth, 0, len(h.pools)),
	}
	for _, pool := range h.pools {
		completed, failed := pool.Stats()
		status.Pools = append(status.Pools, PoolHealth{Name: pool.GetName(), Completed: completed, Failed: failed})
	}

	code := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		status.Database = "down"
		code = http.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}

package handlers

import (
	"gorm.io/gorm"

	"bankmail-ledger-go/internal/metrics"
	"bankmail-ledger-go/internal/registry"
	"bankmail-ledger-go/internal/scheduler"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db        *gorm.DB
	registry  *registry.Registry
	runner    scheduler.CycleRunner
	scheduler *scheduler.Scheduler
	metrics   *metrics.Metrics
}

// NewHandlers creates new HTTP handlers
func NewHandlers(db *gorm.DB, reg *registry.Registry, runner scheduler.CycleRunner, s *scheduler.Scheduler, m *metrics.Metrics) *Handlers {
	return &Handlers{db: db, registry: reg, runner: runner, scheduler: s, metrics: m}
}

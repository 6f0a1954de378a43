package server

import (
	"context"
	"fmt"
	"sync"

	"psiagenda/internal/assistant"
	"psiagenda/internal/backup"
	"psiagenda/internal/instrumentation"
	"psiagenda/internal/schedule"
)

// ServerContext holds the shared dependencies of the MCP server: the
// schedule service, the backup manager, and the optional assistant client.
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	service   *schedule.Service
	backups   *backup.Manager
	assistant *assistant.Client
	metrics   *instrumentation.Metrics
	mu        sync.RWMutex
	shutdown  bool
}

// NewServerContext creates a new server context. The assistant client may
// be nil when no API key is configured; the ask tool then reports that the
// assistant is unavailable instead of failing registration.
func NewServerContext(ctx context.Context, service *schedule.Service, backups *backup.Manager, ai *assistant.Client) (*ServerContext, error) {
	if service == nil {
		return nil, fmt.Errorf("server: schedule service is required")
	}
	if backups == nil {
		return nil, fmt.Errorf("server: backup manager is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		service:   service,
		backups:   backups,
		assistant: ai,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Service returns the schedule service.
func (sc *ServerContext) Service() *schedule.Service {
	return sc.service
}

// Backups returns the backup manager.
func (sc *ServerContext) Backups() *backup.Manager {
	return sc.backups
}

// Assistant returns the assistant client, or nil when not configured.
func (sc *ServerContext) Assistant() *assistant.Client {
	return sc.assistant
}

// SetMetrics attaches the metrics recorder used by tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}

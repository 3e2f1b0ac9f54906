// Package shutdown releases application components once, newest first, when the window
// closes or the process receives SIGINT or SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"imagelab/internal/logger"
)

const componentTimeout = 5 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

type Manager struct {
	logger logger.Logger

	mu      sync.Mutex
	entries []entry

	once   sync.Once
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		logger: log,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a component; components shut down in reverse registration order.
func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry{name: name, component: component})
}

// Listen starts a goroutine that shuts down on SIGINT or SIGTERM.
func (m *Manager) Listen() {
	sigCtx, stop := signal.NotifyContext(m.ctx, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer stop()
		<-sigCtx.Done()
		if m.ctx.Err() != nil {
			return
		}
		m.logger.Info("ShutdownManager", "shutdown signal received", nil)
		m.Shutdown()
	}()
}

// Shutdown runs the shutdown sequence. Only the first call has an effect; later calls
// return immediately.
func (m *Manager) Shutdown() {
	m.once.Do(m.run)
}

func (m *Manager) run() {
	m.cancel()

	m.mu.Lock()
	entries := append([]entry(nil), m.entries...)
	m.mu.Unlock()

	start := time.Now()
	for i := len(entries) - 1; i >= 0; i-- {
		m.stop(entries[i])
	}
	close(m.done)

	m.logger.Info("ShutdownManager", "shutdown completed", map[string]interface{}{
		"components": len(entries),
		"duration":   time.Since(start).String(),
	})
}

// stop gives a component componentTimeout to return before moving on.
func (m *Manager) stop(e entry) {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		e.component.Shutdown()
	}()

	select {
	case <-finished:
		m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{"component": e.name})
	case <-time.After(componentTimeout):
		m.logger.Warning("ShutdownManager", "component shutdown timed out", map[string]interface{}{
			"component": e.name,
			"timeout":   componentTimeout.String(),
		})
	}
}

// Context is cancelled when shutdown starts.
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}

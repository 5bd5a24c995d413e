package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// shutdownGrace bounds how long the registered cleanup tasks may take once a
// termination signal arrives.
const shutdownGrace = 15 * time.Second

type namedTask struct {
	name string
	run  func(context.Context) error
}

// ShutdownManager cancels the service context on SIGINT/SIGTERM and runs the
// registered cleanup tasks (HTTP drain, store disconnects) in registration
// order.
type ShutdownManager struct {
	cancel context.CancelFunc
	mu     sync.Mutex
	tasks  []namedTask
}

func NewShutdownManager(ctx context.Context) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &ShutdownManager{cancel: cancel}
}

// Register adds a named cleanup task. Tasks run in the order they were added.
func (m *ShutdownManager) Register(name string, task func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, namedTask{name: name, run: task})
}

// StartListening installs the signal handler. The first signal triggers the
// shutdown sequence and exits the process.
func (m *ShutdownManager) StartListening() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("helpdesk: received %v, shutting down", sig)
		m.Shutdown()
		os.Exit(0)
	}()
}

// Shutdown cancels the service context and runs every registered task under a
// shared grace period. A failing task is logged and does not stop the rest.
func (m *ShutdownManager) Shutdown() {
	m.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, task := range m.tasks {
		if err := task.run(ctx); err != nil {
			log.Printf("helpdesk: %s shutdown failed: %v", task.name, err)
		} else {
			log.Printf("helpdesk: %s stopped", task.name)
		}
	}
	log.Println("helpdesk: shutdown complete")
}

package tasks

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/pulse-cx/insight/internal/domain/tasks"
	"github.com/pulse-cx/insight/internal/domain/report"
)

// Tracker is the in-memory task store. Handlers read snapshots while the
// background pipeline mutates state, so every access goes through the lock.
// Tasks do not survive a restart.
type Tracker struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]*domain.Task)}
}

// Create registers a new pending task and returns a snapshot of it.
func (t *Tracker) Create(message string) domain.Task {
	task := &domain.Task{
		ID:        uuid.New().String(),
		Status:    domain.StatusPending,
		Progress:  0,
		Message:   message,
		CreatedAt: time.Now(),
	}
	t.mu.Lock()
	t.tasks[task.ID] = task
	t.mu.Unlock()
	return *task
}

// Get returns a snapshot of the task, or ErrNotFound.
func (t *Tracker) Get(id string) (domain.Task, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	task, ok := t.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	return *task, nil
}

// Result returns the completed task's report. ErrNotCompleted until the task
// reaches the completed state.
func (t *Tracker) Result(id string) (*report.Report, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	task, ok := t.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if task.Status != domain.StatusCompleted {
		return nil, domain.ErrNotCompleted
	}
	return task.Result, nil
}

// Progress moves the task to processing at the given milestone. Terminal
// states are never left, and progress never decreases.
func (t *Tracker) Progress(id string, progress int, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[id]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = domain.StatusProcessing
	if progress > task.Progress {
		task.Progress = progress
	}
	task.Message = message
}

// Complete attaches the result and finalizes the task.
func (t *Tracker) Complete(id string, message string, result *report.Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[id]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = domain.StatusCompleted
	task.Progress = 100
	task.Message = message
	task.Result = result
}

// Fail finalizes the task with an error message. Progress resets to 0 and
// any partial result is dropped.
func (t *Tracker) Fail(id string, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[id]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = domain.StatusFailed
	task.Progress = 0
	task.Message = message
	task.Result = nil
}

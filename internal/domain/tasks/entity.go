package tasks

import (
	"errors"
	"time"

	"github.com/pulse-cx/insight/internal/domain/report"
)

// Status enum
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task tracks one asynchronous analysis from request to completion. Progress
// is monotonically non-decreasing while processing; a failed task resets it
// to 0 and holds no partial result.
type Task struct {
	ID        string         `json:"task_id"`
	Status    Status         `json:"status"`
	Progress  int            `json:"progress"` // 0-100
	Message   string         `json:"message"`
	Result    *report.Report `json:"result,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

var (
	// ErrNotFound means the task id was never issued by this process.
	ErrNotFound = errors.New("task not found")
	// ErrNotCompleted means the result was requested before the task
	// reached the completed state.
	ErrNotCompleted = errors.New("task is not completed yet")
)

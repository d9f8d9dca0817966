// Package notify defines the outbound notification boundary. Delivery is
// best-effort: callers fire notifications on their own goroutine, log
// failures, and never let delivery affect the triggering operation.
package notify

import (
	"context"
	"time"
)

// Welcome is sent to a user right after registration.
type Welcome struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// OperatorAlert informs the operator address about a notable event, such as
// a new registration.
type OperatorAlert struct {
	Event    string `json:"event"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TaskReminder nudges an assignee about a task approaching its due date.
type TaskReminder struct {
	AssigneeEmail string    `json:"assignee_email"`
	TaskID        string    `json:"task_id"`
	Title         string    `json:"title"`
	DueAt         time.Time `json:"due_at"`
}

// Notifier delivers notifications to the external notification service.
type Notifier interface {
	SendWelcome(ctx context.Context, msg Welcome) error
	SendOperatorAlert(ctx context.Context, msg OperatorAlert) error
	SendTaskReminder(ctx context.Context, msg TaskReminder) error
}

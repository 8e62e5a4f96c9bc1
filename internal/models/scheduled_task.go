package models

import (
	"time"

	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// ScheduledTaskStatus represents the status of a scheduled task
type ScheduledTaskStatus string

const (
	ScheduledTaskStatusActive   ScheduledTaskStatus = "active"
	ScheduledTaskStatusDone     ScheduledTaskStatus = "done"
	ScheduledTaskStatusFailure  ScheduledTaskStatus = "failure"
	ScheduledTaskStatusDisabled ScheduledTaskStatus = "disabled"
)

// ScheduledTaskKind distinguishes one-shot tasks from recurring ones
type ScheduledTaskKind string

const (
	ScheduledTaskKindOneTime   ScheduledTaskKind = "onetime"
	ScheduledTaskKindRecurring ScheduledTaskKind = "recurring"
)

// ScheduledTask is a queued background job for the worker: overdue
// sweeps, monthly report runs, payment reminders. The queue lives in
// Postgres; application data stays in Firestore.
type ScheduledTask struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string                 `gorm:"type:varchar(255)" json:"name"`
	Args        map[string]interface{} `gorm:"serializer:json" json:"args"`
	LastRun     *time.Time             `json:"last_run"`
	Due         time.Time              `gorm:"index:idx_scheduled_tasks_status_due,priority:2,where:deleted_at IS NULL" json:"due"`
	Recurrence  *string                `gorm:"type:text" json:"recurrence"` // RFC 5545 RRULE string
	Status      ScheduledTaskStatus    `gorm:"type:varchar(20);index:idx_scheduled_tasks_status_due,priority:1,where:deleted_at IS NULL" json:"status"`
	Kind        ScheduledTaskKind      `gorm:"type:varchar(20);default:'onetime'" json:"kind"`
	MaxAttempts int                    `json:"max_attempts"`
}

// NextDue calculates when the task should run again. One-shot tasks keep
// their original due date; recurring tasks follow their RRULE, falling
// back to the current due date when the rule cannot be parsed.
func (t ScheduledTask) NextDue() time.Time {
	if t.Kind == ScheduledTaskKindOneTime {
		return t.Due
	}

	if t.Recurrence != nil && *t.Recurrence != "" {
		rule, err := rrule.StrToRRule(*t.Recurrence)
		if err == nil {
			rule.DTStart(t.Due)
			next := rule.After(time.Now(), true)
			if !next.IsZero() {
				return next
			}
		}
	}
	return t.Due
}

// ScheduledTaskHistory records one execution attempt of a scheduled task
type ScheduledTaskHistory struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ScheduledTaskID uint           `gorm:"index" json:"scheduled_task_id"`

	Name      string                 `gorm:"type:varchar(255)" json:"name"`
	RunAt     time.Time              `json:"run_at"`
	RuntimeMs int                    `json:"runtime_ms"`
	Status    string                 `gorm:"type:varchar(50)" json:"status"`
	Attempt   int                    `json:"attempt"`
	Args      map[string]interface{} `gorm:"serializer:json" json:"args"`
	Result    map[string]interface{} `gorm:"serializer:json" json:"result"`
}

package types

import "time"

// DefaultReminderOffset is applied when a task does not carry an offset of
// its own.
const DefaultReminderOffset = 5

// ReminderDisabled is the sentinel offset meaning the task never fires a
// reminder.
const ReminderDisabled = -1

// A single scheduled task. Date and StartTime are kept as the raw strings
// the client sent ("2006-01-02" and "15:04"); they are only parsed when the
// reminder matcher needs an absolute instant.
type Task struct {
	ID             string    `db:"task_id" json:"id" description:"Opaque stable identifier assigned at creation"`
	Title          string    `db:"title" json:"title" description:"Title of the task"`
	Date           string    `db:"date" json:"date" description:"Calendar date of the task (YYYY-MM-DD)"`
	StartTime      string    `db:"start_time" json:"startTime" description:"Local time of day the task starts (HH:MM)"`
	ReminderOffset *int      `db:"reminder_offset" json:"reminderOffset,omitempty" description:"Minutes before start to fire the reminder. -1 disables the reminder, absent defaults to 5"`
	Completed      bool      `db:"completed" json:"completed" description:"Whether the task has been completed"`
	Notified       bool      `db:"notified" json:"notified" description:"Whether a reminder has already been dispatched for this task"`
	CreatedAt      time.Time `db:"created_at" json:"created_at" description:"The time the task was created"`
}

// Offset resolves the effective reminder offset in minutes.
func (t Task) Offset() int {
	if t.ReminderOffset == nil {
		return DefaultReminderOffset
	}

	return *t.ReminderOffset
}

// ReminderEnabled reports whether this task can ever fire a reminder.
func (t Task) ReminderEnabled() bool {
	return t.Offset() != ReminderDisabled
}

// CreateTask is the request body for task creation
type CreateTask struct {
	Title          string `json:"title" validate:"required,max=200" description:"Title of the task"`
	Date           string `json:"date" validate:"required" description:"Calendar date of the task (YYYY-MM-DD)"`
	StartTime      string `json:"startTime" validate:"required" description:"Local time of day the task starts (HH:MM)"`
	ReminderOffset *int   `json:"reminderOffset,omitempty" validate:"omitempty,min=-1,max=1440" description:"Minutes before start to fire the reminder"`
}

// Package reminders decides when task reminders are due and drives their
// delivery.
package reminders

import (
	"time"

	"lifeos/types"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// StartInstant parses a task's date and start time into an absolute instant
// in the server's local time zone.
func StartInstant(task types.Task) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, task.Date+" "+task.StartTime, time.Local)
}

// TriggerInstant computes the moment the task's reminder should fire,
// truncated to its minute bucket.
func TriggerInstant(task types.Task) (time.Time, error) {
	start, err := StartInstant(task)

	if err != nil {
		return time.Time{}, err
	}

	return start.Add(-time.Duration(task.Offset()) * time.Minute).Truncate(time.Minute), nil
}

// MatchDue returns exactly those candidates whose trigger instant falls in
// the same minute bucket as now.
//
// Both instants are truncated to whole minutes before comparison, so a tick
// that fires a few seconds off the minute boundary still matches. Tasks that
// are completed, already notified or have reminders disabled are never
// matched, regardless of what the caller passed in. A task with a malformed
// date or time is treated as never due, not as an error.
//
// Pure and deterministic: no clock reads, no side effects.
func MatchDue(now time.Time, candidates []types.Task) []types.Task {
	bucket := now.Truncate(time.Minute)

	var due []types.Task

	for _, task := range candidates {
		if task.Completed || task.Notified || !task.ReminderEnabled() {
			continue
		}

		trigger, err := TriggerInstant(task)

		if err != nil {
			continue
		}

		if trigger.Equal(bucket) {
			due = append(due, task)
		}
	}

	return due
}

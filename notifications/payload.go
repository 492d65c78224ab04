package notifications

import (
	"fmt"

	"lifeos/types"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultIcon is used when no icon is configured.
const DefaultIcon = "/icon.png"

// ReminderPayload is the notification payload delivered verbatim to the push
// service, UTF-8 JSON.
type ReminderPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// BuildReminderPayload renders the payload for a due task. An offset of zero
// means the task is starting right now; positive offsets name the exact
// number of minutes remaining.
func BuildReminderPayload(task types.Task, icon string) ReminderPayload {
	if icon == "" {
		icon = DefaultIcon
	}

	var body string

	if task.Offset() == 0 {
		body = fmt.Sprintf("Task %q is starting now (%s)", task.Title, task.StartTime)
	} else {
		body = fmt.Sprintf("Task %q is starting in %d minutes (%s)", task.Title, task.Offset(), task.StartTime)
	}

	return ReminderPayload{
		Title: "LifeOS Reminder",
		Body:  body,
		Icon:  icon,
	}
}

// Marshal serializes the payload for the push transport.
func (p ReminderPayload) Marshal() ([]byte, error) {
	bytes, err := json.Marshal(p)

	if err != nil {
		return nil, fmt.Errorf("error marshalling reminder payload: %w", err)
	}

	return bytes, nil
}

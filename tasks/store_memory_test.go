package tasks

import (
	"context"
	"testing"

	"lifeos/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestMemoryStore_FindCandidates(t *testing.T) {
	s := NewMemoryStore()

	s.Seed(types.Task{ID: "eligible", Date: "2024-05-10", StartTime: "10:00"})
	s.Seed(types.Task{ID: "completed", Date: "2024-05-10", StartTime: "10:00", Completed: true})
	s.Seed(types.Task{ID: "notified", Date: "2024-05-10", StartTime: "10:00", Notified: true})
	s.Seed(types.Task{ID: "disabled", Date: "2024-05-10", StartTime: "10:00", ReminderOffset: intPtr(types.ReminderDisabled)})

	candidates, err := s.FindCandidates(context.Background())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "eligible", candidates[0].ID)
}

func TestMemoryStore_MarkNotifiedIdempotent(t *testing.T) {
	s := NewMemoryStore()
	s.Seed(types.Task{ID: "t1", Date: "2024-05-10", StartTime: "10:00"})

	require.NoError(t, s.MarkNotified(context.Background(), "t1"))
	require.NoError(t, s.MarkNotified(context.Background(), "t1"))

	// Unknown ids are a no-op, not an error
	require.NoError(t, s.MarkNotified(context.Background(), "missing"))

	task, ok := s.Get("t1")
	require.True(t, ok)
	assert.True(t, task.Notified)
}

func TestMemoryStore_SetCompleted(t *testing.T) {
	s := NewMemoryStore()
	s.Seed(types.Task{ID: "t1", Date: "2024-05-10", StartTime: "10:00"})

	require.NoError(t, s.SetCompleted(context.Background(), "t1", true))

	task, _ := s.Get("t1")
	assert.True(t, task.Completed)

	assert.ErrorIs(t, s.SetCompleted(context.Background(), "missing", true), ErrNotFound)
}

func TestTask_Offset(t *testing.T) {
	assert.Equal(t, types.DefaultReminderOffset, types.Task{}.Offset())
	assert.Equal(t, 0, types.Task{ReminderOffset: intPtr(0)}.Offset())
	assert.Equal(t, 30, types.Task{ReminderOffset: intPtr(30)}.Offset())

	assert.True(t, types.Task{}.ReminderEnabled())
	assert.False(t, types.Task{ReminderOffset: intPtr(types.ReminderDisabled)}.ReminderEnabled())
}

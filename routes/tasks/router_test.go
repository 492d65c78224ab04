package tasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	taskstore "lifeos/tasks"
	"lifeos/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRouter(t *testing.T) (*chi.Mux, *taskstore.MemoryStore) {
	t.Helper()

	store := taskstore.NewMemoryStore()

	r := chi.NewRouter()

	Router{
		Store:     store,
		Validator: validator.New(),
		Logger:    zap.NewNop().Sugar(),
	}.Routes(r)

	return r, store
}

func TestCreateTask(t *testing.T) {
	r, store := testRouter(t)

	body := `{"title":"Dentist","date":"2024-05-10","startTime":"10:00","reminderOffset":15}`

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)

	var task types.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Dentist", task.Title)
	require.NotNil(t, task.ReminderOffset)
	assert.Equal(t, 15, *task.ReminderOffset)
	assert.False(t, task.Notified)

	stored, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Dentist", stored.Title)
}

func TestCreateTask_Invalid(t *testing.T) {
	r, _ := testRouter(t)

	for _, body := range []string{
		`{}`,
		`{"title":"x","date":"2024-05-10"}`,
		`{"title":"x","startTime":"10:00"}`,
		`{"title":"x","date":"2024-05-10","startTime":"10:00","reminderOffset":-2}`,
		`garbage`,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestListTasks(t *testing.T) {
	r, store := testRouter(t)

	_, err := store.Create(context.Background(), types.CreateTask{Title: "A", Date: "2024-05-10", StartTime: "09:00"})
	require.NoError(t, err)
	_, err = store.Create(context.Background(), types.CreateTask{Title: "B", Date: "2024-05-09", StartTime: "12:00"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var list []types.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)

	// sorted by date then start time
	assert.Equal(t, "B", list[0].Title)
	assert.Equal(t, "A", list[1].Title)
}

func TestListTasks_Empty(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCompleteTask(t *testing.T) {
	r, store := testRouter(t)

	task, err := store.Create(context.Background(), types.CreateTask{Title: "A", Date: "2024-05-10", StartTime: "09:00"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks/"+task.ID+"/complete", nil))

	require.Equal(t, http.StatusNoContent, w.Code)

	stored, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.True(t, stored.Completed)
}

func TestCompleteTask_NotFound(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks/nope/complete", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

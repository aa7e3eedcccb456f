package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sutra/internal/tasks"
)

func setupTasksRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "test.db"), tasks.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// Registered but never started, so enqueued tasks stay pending.
	client.Register(tasks.NewSeedLibraryQueue(nil), tasks.NewAuditAnnotationsQueue(nil))

	controller := NewTasksController(client)
	router := gin.New()
	router.GET("/api/tasks/types", controller.ListTaskTypes)
	router.GET("/api/tasks/:id", controller.GetTaskStatus)
	router.POST("/api/tasks/:type/run", controller.RunTask)
	return router
}

func TestTasksController(t *testing.T) {
	router := setupTasksRouter(t)

	t.Run("lists task types", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks/types", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			TaskTypes []tasks.TypeInfo `json:"task_types"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.TaskTypes, 2)
		assert.Equal(t, "seed_library", resp.TaskTypes[0].Type)
	})

	t.Run("enqueues and reports a task", func(t *testing.T) {
		body := strings.NewReader(`{"reason":"catalog updated"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/seed_library/run", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp struct {
			TaskID string `json:"task_id"`
			Type   string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.TaskID)
		assert.Equal(t, "seed_library", resp.Type)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks/"+resp.TaskID, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
	})

	t.Run("rejects unknown task types", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks/reindex/run", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown task type")
	})
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "success", taskStatusToString(backlite.TaskStatusSuccess))
	assert.Equal(t, "not_found", taskStatusToString(backlite.TaskStatusNotFound))
}

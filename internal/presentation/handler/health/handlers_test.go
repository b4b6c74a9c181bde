package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/quizmatch/server/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	rooms := repository.NewRoomRepository(30*time.Minute, time.Minute, logging.NewNopLogger())
	t.Cleanup(func() { rooms.Close() })
	quizzes := repository.NewQuizRepository()

	_, err := rooms.Create(context.Background(), "Alice", 4)
	require.NoError(t, err)

	handler := NewHandler(rooms, quizzes)

	rec := httptest.NewRecorder()
	handler.GetHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.RoomsActive)
	assert.Equal(t, 0, resp.QuizzesLoaded)
	assert.NotEmpty(t, resp.Uptime)
}

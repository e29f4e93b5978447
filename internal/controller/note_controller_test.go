package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/internal/pkg/serverutils"
	"notefiber-editor/internal/repository/cache"
	"notefiber-editor/internal/repository/memory"
	"notefiber-editor/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardPublisher struct{}

func (discardPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func newTestApp(mw ...fiber.Handler) *fiber.App {
	log := logger.NewNopLogger()
	svc := service.NewNoteService(memory.NewRepositoryFactory(), cache.NewMemoryNoteCache(), discardPublisher{}, log)

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(log)})
	NewNoteController(svc, mw...).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestNoteRoutes(t *testing.T) {
	app := newTestApp()

	res := doJSON(t, app, http.MethodGet, "/notes/2", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, res).Code)

	res = doJSON(t, app, http.MethodPost, "/notes", map[string]any{
		"id":         "2",
		"title":      "A",
		"btnContent": "Go",
		"btnURL":     "https://example.com",
		"showCTA":    true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decode[dto.NoteResponse](t, res)
	assert.Equal(t, "2", created.Id)
	assert.True(t, created.ShowCTA)

	res = doJSON(t, app, http.MethodPost, "/notes", map[string]any{"id": "2", "title": "B"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res = doJSON(t, app, http.MethodPut, "/notes/2", map[string]any{"title": "B"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "B", decode[dto.NoteResponse](t, res).Title)

	res = doJSON(t, app, http.MethodGet, "/notes/2", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	shown := decode[dto.NoteResponse](t, res)
	assert.Equal(t, "B", shown.Title)
	assert.False(t, shown.ShowCTA)
}

func TestNoteRoutesValidate(t *testing.T) {
	app := newTestApp()

	res := doJSON(t, app, http.MethodPost, "/notes", map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", decode[dto.ErrorResponse](t, res).Code)

	res = doJSON(t, app, http.MethodPost, "/notes", map[string]any{"title": "A", "btnURL": "nope"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = doJSON(t, app, http.MethodPut, "/notes/missing", map[string]any{"title": "A"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNoteRoutesBehindJwt(t *testing.T) {
	app := newTestApp(serverutils.JwtMiddleware("s3cret"))

	res := doJSON(t, app, http.MethodGet, "/notes/2", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devfolio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryContactRepo struct {
	saved []models.ContactMessage
}

func (r *memoryContactRepo) Create(ctx context.Context, message *models.ContactMessage) error {
	r.saved = append(r.saved, *message)
	return nil
}

func (r *memoryContactRepo) GetPaginated(ctx context.Context, page, limit int) ([]models.ContactMessage, error) {
	return r.saved, nil
}

func (r *memoryContactRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.saved)), nil
}

func setupContactRouter(repo *memoryContactRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/contact", NewContactHandler(repo).Submit)
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestContactSubmit_SavesMessage(t *testing.T) {
	repo := &memoryContactRepo{}
	router := setupContactRouter(repo)

	w := postJSON(t, router, "/api/v1/contact",
		`{"name": "Alice", "email": "alice@example.com", "message": "Hi there"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success"`)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "alice@example.com", repo.saved[0].Email)
}

func TestContactSubmit_HoneypotFakesSuccess(t *testing.T) {
	repo := &memoryContactRepo{}
	router := setupContactRouter(repo)

	w := postJSON(t, router, "/api/v1/contact",
		`{"name": "Bot", "email": "bot@spam.com", "message": "buy now", "confirm_email": "bot@spam.com"}`)

	assert.Equal(t, http.StatusOK, w.Code, "bots must see a normal success response")
	assert.Contains(t, w.Body.String(), `"success"`)
	assert.Empty(t, repo.saved, "honeypot submissions are never persisted")
}

func TestContactSubmit_RejectsBadEmail(t *testing.T) {
	repo := &memoryContactRepo{}
	router := setupContactRouter(repo)

	w := postJSON(t, router, "/api/v1/contact",
		`{"name": "Alice", "email": "not-an-email", "message": "Hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.saved)
}

func TestContactSubmit_RejectsMissingFields(t *testing.T) {
	repo := &memoryContactRepo{}
	router := setupContactRouter(repo)

	w := postJSON(t, router, "/api/v1/contact", `{"name": "Alice"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.saved)
}

func TestContactSubmit_RejectsOversizedMessage(t *testing.T) {
	repo := &memoryContactRepo{}
	router := setupContactRouter(repo)

	huge := strings.Repeat("a", maxContactMessageLen+1)
	w := postJSON(t, router, "/api/v1/contact",
		`{"name": "Alice", "email": "alice@example.com", "message": "`+huge+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.saved)
}

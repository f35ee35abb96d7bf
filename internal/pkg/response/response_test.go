package response

import (
	"ContentTracker/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func record(t *testing.T, fn func(c *gin.Context)) envelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	env := record(t, func(c *gin.Context) { Success(c, gin.H{"id": 1}) })
	assert.Equal(t, Ok, env.Code)
	assert.JSONEq(t, `{"id":1}`, string(env.Data))
}

func TestErrorMapsKnownErrors(t *testing.T) {
	env := record(t, func(c *gin.Context) { Error(c, fmt.Errorf("ctx: %w", service.ErrYouTubeKeyMissing)) })
	assert.Equal(t, PreconditionFailed, env.Code)
	assert.Equal(t, service.ErrYouTubeKeyMissing.Error(), env.Message)

	env = record(t, func(c *gin.Context) { Error(c, service.ErrAccountNotFound) })
	assert.Equal(t, NotFound, env.Code)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	env := record(t, func(c *gin.Context) { Error(c, errors.New("dial tcp 10.0.0.1:3306")) })
	assert.Equal(t, InternalServerError, env.Code)
	assert.Equal(t, service.UnExpectedError.Error(), env.Message)
}

func TestRateLimitedAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RateLimited(c, 90*time.Second)

	assert.True(t, c.IsAborted())
	assert.Equal(t, "90", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"code":429`)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/testutil"
)

func newEngine(logger *testutil.MockLogger, cfg LoggingConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogging(logger, nil, cfg))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(5 * time.Millisecond)
		c.Status(http.StatusOK)
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRequestLogging_LevelByOutcome(t *testing.T) {
	logger := testutil.NewMockLogger()
	r := newEngine(logger, LoggingConfig{SlowThreshold: time.Millisecond})

	serve(r, "/ok?appl_id=1")
	serve(r, "/bad")
	serve(r, "/boom")
	serve(r, "/slow")

	msgs := logger.GetMessages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "info", msgs[0].Level)
	path, _ := msgs[0].Field("path")
	assert.Equal(t, "/ok?appl_id=1", path)
	id, _ := msgs[0].Field("request_id")
	assert.NotEmpty(t, id)

	assert.Equal(t, "warn", msgs[1].Level)
	assert.Equal(t, "error", msgs[2].Level)
	assert.True(t, logger.HasMessage("warn", "HTTP request completed (slow)"))
}

func TestRequestLogging_SkipPaths(t *testing.T) {
	logger := testutil.NewMockLogger()
	r := newEngine(logger, DefaultLoggingConfig())

	serve(r, "/healthz")
	assert.Empty(t, logger.GetMessages())
}

func TestRequestID(t *testing.T) {
	r := newEngine(testutil.NewMockLogger(), DefaultLoggingConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "given")
	r.ServeHTTP(w, req)
	assert.Equal(t, "given", w.Header().Get(HeaderRequestID))

	a := serve(r, "/ok").Header().Get(HeaderRequestID)
	b := serve(r, "/ok").Header().Get(HeaderRequestID)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRequestID_ScopesLoggerInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := testutil.NewMockLogger()
	r := gin.New()
	r.Use(RequestID(logger))
	r.GET("/q", func(c *gin.Context) {
		logging.FromContext(c.Request.Context(), nil).Info("resolved")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/q", nil)
	req.Header.Set(HeaderRequestID, "abc")
	r.ServeHTTP(w, req)

	msg, ok := logger.Find("info", "resolved")
	require.True(t, ok)
	id, _ := msg.Field("request_id")
	assert.Equal(t, "abc", id)
}

//Personal.AI order the ending

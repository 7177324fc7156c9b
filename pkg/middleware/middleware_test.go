package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/pkg/middleware"
	"voyage/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(tokens *utils.TokenIssuer) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.GET("/me", middleware.JWTAuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.UserIDKey))
	})
	return r
}

func TestJWTAuthMiddleware_missingHeader(t *testing.T) {
	r := newProtectedRouter(utils.NewTokenIssuer("secret"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.NotEmpty(t, body.Message)
	assert.NotEmpty(t, body.TraceID)
}

func TestJWTAuthMiddleware_wrongSecret(t *testing.T) {
	r := newProtectedRouter(utils.NewTokenIssuer("secret"))
	token, err := utils.NewTokenIssuer("other").CreateToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_setsUserID(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret")
	r := newProtectedRouter(tokens)
	userID := uuid.New()
	token, err := tokens.CreateToken(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestTraceIDMiddleware_keepsValidInboundID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	inbound := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", inbound)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, inbound, rec.Body.String())
	assert.Equal(t, inbound, rec.Header().Get("X-Trace-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "not-a-uuid")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", rec.Body.String())
}

func TestSlogLogger_logsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware(), middleware.SlogLogger(logger))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/health", entry["path"])
	assert.EqualValues(t, http.StatusNoContent, entry["status"])
	assert.Equal(t, rec.Header().Get("X-Trace-ID"), entry["trace_id"])
	assert.NotNil(t, entry["duration_ms"])
}

func TestCORSMiddleware_allowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

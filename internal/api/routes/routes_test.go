package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Godasy/visitor-management-system/internal/config"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	router := gin.New()
	cfg := config.Config{
		Environment:   "test",
		AdminKey:      "test-key",
		TZOffsetHours: 8,
	}
	require.NoError(t, Register(router, db, cfg))
	return router
}

func get(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_HealthEndpoint(t *testing.T) {
	router := setupRouter(t)
	w := get(router, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_MetricsEndpoint(t *testing.T) {
	router := setupRouter(t)
	w := get(router, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vms_visits_recorded_total")
}

func TestRegister_RecordRoute(t *testing.T) {
	router := setupRouter(t)

	// A private source IP never reaches the external geolocation providers.
	w := get(router, "/api/visitor/record", map[string]string{"X-Forwarded-For": "192.168.1.50"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "192.168.1.50")
	assert.Contains(t, w.Body.String(), "private network")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRegister_RecordLoopbackPeer(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/visitor/record", nil)
	req.RemoteAddr = "127.0.0.1:54321"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"visitorIp":"127.0.0.1"`)
	assert.Contains(t, w.Body.String(), "local network")
}

func TestRegister_StatsRoute(t *testing.T) {
	router := setupRouter(t)
	w := get(router, "/api/visitor/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "totalVisitors")
}

func TestRegister_UnknownRouteIs404(t *testing.T) {
	router := setupRouter(t)
	w := get(router, "/api/visitor/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

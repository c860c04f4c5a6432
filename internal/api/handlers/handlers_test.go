package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Godasy/visitor-management-system/internal/api/middleware"
	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/models"
	"github.com/Godasy/visitor-management-system/internal/services"
	"github.com/Godasy/visitor-management-system/internal/store"
)

type fixedResolver struct{}

func (fixedResolver) Resolve(_ context.Context, _ string) string { return "test region" }

// newTestRouter wires the full handler surface over an in-memory database
// with a canned region resolver.
func newTestRouter(t *testing.T) (*gin.Engine, *store.VisitStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Visit{}, &models.BlacklistEntry{}))

	clock := localtime.New(8)
	st := store.NewVisitStore(db, clock)
	notifier := services.NewNotifierService(nil)

	recorder := services.NewRecorderService(st, fixedResolver{}, clock)
	stats := services.NewStatsService(st, clock)
	blacklist := services.NewBlacklistService(st, clock, notifier, "test-admin-key")

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.RequestID())

	visitorHandler := NewVisitorHandler(recorder, stats, blacklist)
	api.GET("/visitor/record", visitorHandler.Record)
	api.GET("/visitor/stats", visitorHandler.Stats)
	api.POST("/visitor/reset", visitorHandler.Reset)

	blacklistHandler := NewBlacklistHandler(blacklist)
	api.GET("/blacklist", blacklistHandler.List)
	api.POST("/blacklist/add", blacklistHandler.Add)
	api.DELETE("/blacklist/delete/:id", blacklistHandler.Delete)

	return router, st
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doRecord(router *gin.Engine, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/visitor/record", nil)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

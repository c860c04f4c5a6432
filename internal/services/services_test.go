package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/models"
	"github.com/Godasy/visitor-management-system/internal/store"
)

// stubResolver returns a canned region and remembers what it was asked.
type stubResolver struct {
	region   string
	resolved []string
}

func (r *stubResolver) Resolve(_ context.Context, ip string) string {
	r.resolved = append(r.resolved, ip)
	return r.region
}

type testEnv struct {
	store     *store.VisitStore
	clock     *localtime.Formatter
	resolver  *stubResolver
	recorder  *RecorderService
	stats     *StatsService
	blacklist *BlacklistService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Visit{}, &models.BlacklistEntry{}))

	clock := localtime.New(8)
	st := store.NewVisitStore(db, clock)
	resolver := &stubResolver{region: "Testland"}
	notifier := NewNotifierService(nil)

	return &testEnv{
		store:     st,
		clock:     clock,
		resolver:  resolver,
		recorder:  NewRecorderService(st, resolver, clock),
		stats:     NewStatsService(st, clock),
		blacklist: NewBlacklistService(st, clock, notifier, "secret"),
	}
}

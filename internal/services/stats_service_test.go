package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOverview_Empty(t *testing.T) {
	env := setupEnv(t)

	overview, err := env.stats.GetOverview()
	require.NoError(t, err)

	assert.Zero(t, overview.TotalVisitors)
	assert.Zero(t, overview.TodayVisitors)
	assert.Empty(t, overview.SevenDaysTrend)
	assert.Empty(t, overview.TopIPList)
	assert.Empty(t, overview.VisitorList)
}

func TestGetOverview_SameDayScenario(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.recorder.Record(ctx, "1.1.1.1:80", "", "")
		require.NoError(t, err)
	}
	_, err := env.recorder.Record(ctx, "2.2.2.2:80", "", "")
	require.NoError(t, err)

	overview, err := env.stats.GetOverview()
	require.NoError(t, err)

	assert.Equal(t, int64(4), overview.TotalVisitors)
	assert.Equal(t, int64(4), overview.TodayVisitors)

	require.Len(t, overview.SevenDaysTrend, 1)
	assert.Equal(t, env.clock.Today(), overview.SevenDaysTrend[0].Date)
	assert.Equal(t, int64(4), overview.SevenDaysTrend[0].Count)

	require.Len(t, overview.TopIPList, 2)
	assert.Equal(t, "1.1.1.1", overview.TopIPList[0].IP)
	assert.Equal(t, int64(3), overview.TopIPList[0].Count)
	assert.Equal(t, "2.2.2.2", overview.TopIPList[1].IP)

	assert.Len(t, overview.VisitorList, 4)
}

func TestGetOverview_RecentListCapped(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	for i := 0; i < recentVisitLimit+5; i++ {
		_, err := env.recorder.Record(ctx, "4.4.4.4:80", "", "")
		require.NoError(t, err)
	}

	overview, err := env.stats.GetOverview()
	require.NoError(t, err)
	assert.Len(t, overview.VisitorList, recentVisitLimit)
	assert.Equal(t, int64(recentVisitLimit+5), overview.TotalVisitors)
}

package services

import (
	"fmt"

	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/models"
	"github.com/Godasy/visitor-management-system/internal/store"
)

const (
	trendWindowDays  = 7
	topIPLimit       = 10
	recentVisitLimit = 10
)

// Overview is the combined statistics report. Each field reflects the store
// at the instant of its own query; there is no cross-query snapshot.
type Overview struct {
	TotalVisitors  int64              `json:"totalVisitors"`
	TodayVisitors  int64              `json:"todayVisitors"`
	SevenDaysTrend []store.DailyCount `json:"sevenDaysTrend"`
	TopIPList      []store.IPCount    `json:"topIpList"`
	VisitorList    []models.Visit     `json:"visitorList"`
}

// StatsService assembles read-only aggregates from the visit store.
type StatsService struct {
	store *store.VisitStore
	clock *localtime.Formatter
}

func NewStatsService(st *store.VisitStore, clock *localtime.Formatter) *StatsService {
	return &StatsService{store: st, clock: clock}
}

// GetOverview runs the five aggregate queries and assembles the report.
func (s *StatsService) GetOverview() (*Overview, error) {
	total, err := s.store.CountValidVisits()
	if err != nil {
		return nil, fmt.Errorf("count total visits: %w", err)
	}

	today, err := s.store.CountValidVisitsOnDate(s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("count today visits: %w", err)
	}

	trend, err := s.store.TrendLastNDays(trendWindowDays)
	if err != nil {
		return nil, fmt.Errorf("trend query: %w", err)
	}

	top, err := s.store.TopIPsByVisits(topIPLimit)
	if err != nil {
		return nil, fmt.Errorf("top ips query: %w", err)
	}

	recent, err := s.store.RecentVisits(recentVisitLimit)
	if err != nil {
		return nil, fmt.Errorf("recent visits query: %w", err)
	}

	return &Overview{
		TotalVisitors:  total,
		TodayVisitors:  today,
		SevenDaysTrend: trend,
		TopIPList:      top,
		VisitorList:    recent,
	}, nil
}

// Package store implements the durable visit log and blacklist set over a
// relational database. All read aggregates filter on is_valid and bucket
// dates using the civil visit_time string, never the database server clock.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/models"
)

// ErrDuplicateIP reports that an IP is already present in the blacklist,
// whether found by the pre-check or rejected by the unique index.
var ErrDuplicateIP = errors.New("ip already blacklisted")

// DailyCount is one trend bucket: visits grouped by civil date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// IPCount ranks an IP by its number of recorded visits.
type IPCount struct {
	IP     string `json:"ip" gorm:"column:ip"`
	Region string `json:"region"`
	Count  int64  `json:"count"`
}

// VisitStore persists visits and blacklist entries.
type VisitStore struct {
	db    *gorm.DB
	clock *localtime.Formatter
}

// NewVisitStore wraps db. The clock supplies the civil-date window for the
// trend query so "last 7 days" is computed in the configured offset.
func NewVisitStore(db *gorm.DB, clock *localtime.Formatter) *VisitStore {
	return &VisitStore{db: db, clock: clock}
}

// InsertVisit appends one visit row; the id is assigned by the store.
func (s *VisitStore) InsertVisit(visit *models.Visit) error {
	return s.db.Create(visit).Error
}

// IsBlacklisted reports whether ip has an active blacklist entry.
func (s *VisitStore) IsBlacklisted(ip string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BlacklistEntry{}).Where("blocked_ip = ?", ip).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertBlacklistEntry adds ip to the blacklist. Existing entries, including
// ones inserted by a racing request, yield ErrDuplicateIP.
func (s *VisitStore) InsertBlacklistEntry(entry *models.BlacklistEntry) error {
	exists, err := s.IsBlacklisted(entry.BlockedIP)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateIP
	}

	if err := s.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateIP
		}
		return err
	}
	return nil
}

// DeleteBlacklistEntry removes the entry with the given id. Deleting an
// absent id is not an error.
func (s *VisitStore) DeleteBlacklistEntry(id uint) error {
	return s.db.Delete(&models.BlacklistEntry{}, id).Error
}

// ListBlacklist returns all entries, newest add_time first.
func (s *VisitStore) ListBlacklist() ([]models.BlacklistEntry, error) {
	var entries []models.BlacklistEntry
	err := s.db.Order("add_time DESC, id DESC").Find(&entries).Error
	return entries, err
}

// CountValidVisits returns the total number of valid visits.
func (s *VisitStore) CountValidVisits() (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).Where("is_valid = ?", true).Count(&count).Error
	return count, err
}

// CountValidVisitsOnDate counts valid visits whose civil date equals date.
func (s *VisitStore) CountValidVisitsOnDate(date string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Visit{}).
		Where("is_valid = ? AND DATE(visit_time) = ?", true, date).
		Count(&count).Error
	return count, err
}

// TrendLastNDays groups valid visits by civil date over the last n days,
// ascending. Dates with no visits do not appear.
func (s *VisitStore) TrendLastNDays(n int) ([]DailyCount, error) {
	start := s.clock.DaysAgo(n - 1)

	var trend []DailyCount
	err := s.db.Model(&models.Visit{}).
		Select("DATE(visit_time) AS date, COUNT(*) AS count").
		Where("is_valid = ? AND DATE(visit_time) >= ?", true, start).
		Group("DATE(visit_time)").
		Order("date ASC").
		Scan(&trend).Error
	return trend, err
}

// TopIPsByVisits ranks IPs by valid visit count, descending, limited to
// limit rows. Ties break arbitrarily.
func (s *VisitStore) TopIPsByVisits(limit int) ([]IPCount, error) {
	var top []IPCount
	err := s.db.Model(&models.Visit{}).
		Select("visitor_ip AS ip, MAX(region) AS region, COUNT(*) AS count").
		Where("is_valid = ?", true).
		Group("visitor_ip").
		Order("count DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

// RecentVisits returns the most recent valid visits, newest first.
func (s *VisitStore) RecentVisits(limit int) ([]models.Visit, error) {
	var visits []models.Visit
	err := s.db.Where("is_valid = ?", true).
		Order("visit_time DESC, id DESC").
		Limit(limit).
		Find(&visits).Error
	return visits, err
}

// ResetAllVisits deletes every visit row and resets the id sequence so the
// next insert starts again from 1. Blacklist entries are untouched.
func (s *VisitStore) ResetAllVisits() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM visits").Error; err != nil {
			return err
		}
		// sqlite_sequence only exists once an AUTOINCREMENT table has seen
		// an insert; resetting an empty database is still a success.
		if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", "visits").Error; err != nil && !strings.Contains(err.Error(), "no such table") {
			return err
		}
		return nil
	})
}

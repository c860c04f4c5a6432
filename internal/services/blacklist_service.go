package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/models"
	"github.com/Godasy/visitor-management-system/internal/store"
)

var (
	// ErrMissingIP reports a blacklist add without an ip.
	ErrMissingIP = errors.New("ip is required")
	// ErrUnauthorized reports an admin key mismatch.
	ErrUnauthorized = errors.New("invalid admin key")
)

// BlacklistService manages the blocked-IP set and the admin visit reset.
type BlacklistService struct {
	store    *store.VisitStore
	clock    *localtime.Formatter
	notifier *NotifierService
	adminKey string
}

func NewBlacklistService(st *store.VisitStore, clock *localtime.Formatter, notifier *NotifierService, adminKey string) *BlacklistService {
	return &BlacklistService{store: st, clock: clock, notifier: notifier, adminKey: adminKey}
}

// List returns all blacklist entries, newest first.
func (s *BlacklistService) List() ([]models.BlacklistEntry, error) {
	return s.store.ListBlacklist()
}

// Add blocks ip. An empty ip is a validation error; an already-blocked ip
// yields store.ErrDuplicateIP with the existing entry untouched.
func (s *BlacklistService) Add(ip, remark string) error {
	if strings.TrimSpace(ip) == "" {
		return ErrMissingIP
	}
	ip = NormalizeIP(ip)
	if remark == "" {
		remark = models.NoRemark
	}

	datetime, _ := s.clock.Now()
	err := s.store.InsertBlacklistEntry(&models.BlacklistEntry{
		BlockedIP: ip,
		AddTime:   datetime,
		Remark:    remark,
	})
	if err != nil {
		return err
	}

	s.notifier.Send("IP blacklisted", fmt.Sprintf("%s added to the blacklist (%s)", ip, remark))
	return nil
}

// Remove deletes the entry with the given id; absent ids are a no-op.
func (s *BlacklistService) Remove(id uint) error {
	return s.store.DeleteBlacklistEntry(id)
}

// ResetVisits wipes all visit records after checking the admin key. The
// blacklist itself is never touched by a reset.
func (s *BlacklistService) ResetVisits(adminKey string) error {
	if adminKey != s.adminKey {
		return ErrUnauthorized
	}

	if err := s.store.ResetAllVisits(); err != nil {
		return fmt.Errorf("reset visits: %w", err)
	}

	s.notifier.Send("Visit records reset", "all visit records were wiped by an admin")
	return nil
}

package services

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/metrics"
	"github.com/Godasy/visitor-management-system/internal/models"
	"github.com/Godasy/visitor-management-system/internal/store"
)

// Loopback is the canonical form missing and loopback addresses collapse to.
const Loopback = "127.0.0.1"

// RegionResolver turns an IP into a best-effort region label.
type RegionResolver interface {
	Resolve(ctx context.Context, ip string) string
}

// RecordResult echoes what was (or was not) persisted for one request.
type RecordResult struct {
	Blocked   bool
	VisitorIP string
	Region    string
	VisitTime string
}

// RecorderService orchestrates blacklist check, region resolution and
// persistence for each incoming visit.
type RecorderService struct {
	store    *store.VisitStore
	resolver RegionResolver
	clock    *localtime.Formatter
}

func NewRecorderService(st *store.VisitStore, resolver RegionResolver, clock *localtime.Formatter) *RecorderService {
	return &RecorderService{store: st, resolver: resolver, clock: clock}
}

// Record processes one visit request. Blacklisted IPs are reported without a
// write; a store failure is returned to the caller with nothing retried.
func (s *RecorderService) Record(ctx context.Context, remoteAddr, forwardedFor, userAgent string) (RecordResult, error) {
	ip := ClientIP(remoteAddr, forwardedFor)

	blocked, err := s.store.IsBlacklisted(ip)
	if err != nil {
		return RecordResult{}, fmt.Errorf("blacklist check: %w", err)
	}
	if blocked {
		metrics.IncVisitBlocked()
		return RecordResult{Blocked: true, VisitorIP: ip}, nil
	}

	region := s.resolver.Resolve(ctx, ip)
	datetime, _ := s.clock.Now()

	if userAgent == "" {
		userAgent = models.UnknownDevice
	}

	visit := &models.Visit{
		VisitorIP: ip,
		Region:    region,
		VisitTime: datetime,
		UserAgent: userAgent,
		IsValid:   true,
	}
	if err := s.store.InsertVisit(visit); err != nil {
		return RecordResult{}, fmt.Errorf("insert visit: %w", err)
	}

	metrics.IncVisitRecorded()
	return RecordResult{VisitorIP: ip, Region: region, VisitTime: datetime}, nil
}

// ClientIP picks the client address: the first entry of a forwarded-for
// header when present, otherwise the transport peer address, normalized.
func ClientIP(remoteAddr, forwardedFor string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return NormalizeIP(ip)
		}
	}

	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	return NormalizeIP(host)
}

// NormalizeIP collapses IPv6-mapped IPv4 forms and maps missing or loopback
// addresses to the canonical loopback literal.
func NormalizeIP(ip string) string {
	ip = strings.TrimPrefix(strings.TrimSpace(ip), "::ffff:")
	if ip == "" || ip == "::1" || ip == Loopback {
		return Loopback
	}
	return ip
}

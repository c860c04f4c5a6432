// Package geo turns an IP address into a best-effort human-readable region
// label. Lookups never fail: local and private addresses are classified
// without any network call, public addresses go through an optional local
// GeoLite2 database and then an ordered list of HTTP providers, and anything
// that cannot be resolved degrades to the "unknown" sentinel.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/Godasy/visitor-management-system/internal/logger"
	"github.com/Godasy/visitor-management-system/internal/metrics"
	"github.com/Godasy/visitor-management-system/internal/models"
)

// Region labels for addresses that never reach an external provider.
const (
	RegionLocal   = "local network"
	RegionPrivate = "private network"
)

const (
	providerTimeout = 3 * time.Second
	cacheTTL        = time.Hour
)

// Resolver resolves IPs to region labels. Safe for concurrent use.
type Resolver struct {
	client        *http.Client
	cache         *regionCache
	geodb         *geoip2.Reader
	primaryBase   string
	secondaryBase string
}

// NewResolver builds a Resolver. geoipPath may be empty; when set and the
// GeoLite2 database opens successfully it is consulted before the HTTP
// providers.
func NewResolver(geoipPath string) *Resolver {
	r := &Resolver{
		client:        &http.Client{Timeout: providerTimeout},
		cache:         newRegionCache(cacheTTL),
		primaryBase:   "http://ip-api.com",
		secondaryBase: "https://ipapi.co",
	}

	if geoipPath != "" {
		db, err := geoip2.Open(geoipPath)
		if err != nil {
			logger.Log().WithError(err).WithField("path", geoipPath).Warn("GeoLite2 database unavailable, using HTTP providers only")
		} else {
			r.geodb = db
		}
	}

	return r
}

// Close releases the GeoLite2 reader if one was opened.
func (r *Resolver) Close() {
	if r.geodb != nil {
		_ = r.geodb.Close()
	}
}

// Resolve classifies ip and returns a displayable region label. It never
// returns an error; provider failures degrade to the "unknown" sentinel.
func (r *Resolver) Resolve(ctx context.Context, ip string) string {
	if ip == "127.0.0.1" || ip == "localhost" {
		return RegionLocal
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return models.UnknownRegion
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() {
		return RegionPrivate
	}

	if region, ok := r.cache.Get(ip); ok {
		return region
	}

	if region := r.lookupGeoDB(parsed); region != "" {
		r.cache.Set(ip, region)
		return region
	}

	if region, err := r.lookupPrimary(ctx, ip); err == nil && region != "" {
		r.cache.Set(ip, region)
		return region
	} else if err != nil {
		metrics.IncGeoLookupFailure()
		logger.Log().WithError(err).WithField("ip", ip).Debug("primary geolocation provider failed")
	}

	if region, err := r.lookupSecondary(ctx, ip); err == nil && region != "" {
		r.cache.Set(ip, region)
		return region
	} else if err != nil {
		metrics.IncGeoLookupFailure()
		logger.Log().WithError(err).WithField("ip", ip).Debug("secondary geolocation provider failed")
	}

	return models.UnknownRegion
}

func (r *Resolver) lookupGeoDB(ip net.IP) string {
	if r.geodb == nil {
		return ""
	}

	record, err := r.geodb.City(ip)
	if err != nil {
		return ""
	}

	parts := []string{record.Country.Names["en"]}
	if len(record.Subdivisions) > 0 {
		parts = append(parts, record.Subdivisions[0].Names["en"])
	}
	parts = append(parts, record.City.Names["en"])

	return joinNonEmpty(parts)
}

// lookupPrimary queries ip-api.com and composes country/region/city,
// omitting empty parts.
func (r *Resolver) lookupPrimary(ctx context.Context, ip string) (string, error) {
	url := fmt.Sprintf("%s/json/%s?fields=status,country,regionName,city", r.primaryBase, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data struct {
		Status     string `json:"status"`
		Country    string `json:"country"`
		RegionName string `json:"regionName"`
		City       string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.Status != "success" {
		return "", fmt.Errorf("lookup failed for %s", ip)
	}

	return joinNonEmpty([]string{data.Country, data.RegionName, data.City}), nil
}

// lookupSecondary queries ipapi.co and composes "country - region" only when
// both fields are present.
func (r *Resolver) lookupSecondary(ctx context.Context, ip string) (string, error) {
	url := fmt.Sprintf("%s/%s/json/", r.secondaryBase, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data struct {
		CountryName string `json:"country_name"`
		Region      string `json:"region"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.CountryName == "" || data.Region == "" {
		return "", nil
	}

	return data.CountryName + " - " + data.Region, nil
}

func joinNonEmpty(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Package statistics caches the platform-wide counts shown on the admin
// dashboard. All of it is best-effort display data: cache misses fall back
// to the database, cache write failures are only logged.
package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/cache"
)

const (
	CacheKeyVendorsTotal  = "statistics:vendors:total"
	CacheKeyVendorsActive = "statistics:vendors:active"
	CacheKeyEquipment     = "statistics:equipment:total"
	CacheKeyLeads         = "statistics:leads:total"
	CacheKeyContactEvents = "statistics:contact_events:total"
	CacheKeyPendingReview = "statistics:reports:pending"
	CacheExpiration       = 30 * time.Minute
)

// PlatformStats holds the admin dashboard counters.
type PlatformStats struct {
	TotalVendors       int64 `json:"total_vendors"`
	ActiveVendors      int64 `json:"active_vendors"`
	TotalEquipment     int64 `json:"total_equipment"`
	TotalLeads         int64 `json:"total_leads"`
	TotalContactEvents int64 `json:"total_contact_events"`
	PendingReports     int64 `json:"pending_reports"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute

	cacheKeys = []string{
		CacheKeyVendorsTotal,
		CacheKeyVendorsActive,
		CacheKeyEquipment,
		CacheKeyLeads,
		CacheKeyContactEvents,
		CacheKeyPendingReview,
	}
)

// ShouldUpdateCache reports whether the refresh interval has elapsed.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("statistics cache refresh failed: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// InvalidateCache drops the cached counters and forces the next refresh.
// Called after admin mutations that change what the dashboard counts.
func InvalidateCache() {
	for _, key := range cacheKeys {
		if err := cache.Delete(key); err != nil {
			log.Printf("statistics cache invalidation failed for %s: %v", key, err)
		}
	}
	ResetCacheUpdateTimer()
}

// UpdateStatisticsCache recomputes all counters and stores them in Redis.
func UpdateStatisticsCache() error {
	stats, err := computeStats()
	if err != nil {
		return err
	}

	entries := map[string]int64{
		CacheKeyVendorsTotal:  stats.TotalVendors,
		CacheKeyVendorsActive: stats.ActiveVendors,
		CacheKeyEquipment:     stats.TotalEquipment,
		CacheKeyLeads:         stats.TotalLeads,
		CacheKeyContactEvents: stats.TotalContactEvents,
		CacheKeyPendingReview: stats.PendingReports,
	}
	for key, value := range entries {
		if err := cache.Set(key, strconv.FormatInt(value, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
			return err
		}
	}

	return nil
}

// GetPlatformStats returns the dashboard counters, preferring the cache and
// recomputing from the database on any miss.
func GetPlatformStats() (PlatformStats, error) {
	values := make([]int64, len(cacheKeys))
	for i, key := range cacheKeys {
		v, err := cache.GetInt(key)
		if err != nil {
			// Cache miss or cache down: recompute everything once.
			stats, dbErr := computeStats()
			if dbErr != nil {
				return PlatformStats{}, dbErr
			}
			if err := UpdateStatisticsCache(); err != nil {
				log.Printf("statistics cache write failed: %v", err)
			}
			return stats, nil
		}
		values[i] = int64(v)
	}

	return PlatformStats{
		TotalVendors:       values[0],
		ActiveVendors:      values[1],
		TotalEquipment:     values[2],
		TotalLeads:         values[3],
		TotalContactEvents: values[4],
		PendingReports:     values[5],
	}, nil
}

func computeStats() (PlatformStats, error) {
	repos := repository.GetGlobalRepositories()

	var stats PlatformStats
	var err error

	if stats.TotalVendors, err = repos.Vendor.Count(); err != nil {
		return stats, err
	}
	if stats.ActiveVendors, err = repos.Vendor.CountActive(); err != nil {
		return stats, err
	}
	if stats.TotalEquipment, err = repos.Equipment.Count(); err != nil {
		return stats, err
	}
	if stats.TotalLeads, err = repos.LeadRequest.Count(); err != nil {
		return stats, err
	}
	if stats.TotalContactEvents, err = repos.ContactEvent.Count(); err != nil {
		return stats, err
	}
	if stats.PendingReports, err = repos.Report.CountByStatus("pending"); err != nil {
		return stats, err
	}

	return stats, nil
}

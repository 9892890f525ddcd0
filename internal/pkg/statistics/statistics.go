package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/internal/pkg/cache"
	"github.com/pagebound/BookCrate/internal/pkg/database"
)

const (
	CacheKeyPackagesTotal = "statistics:packages:total"
	CacheKeyOrdersOpen    = "statistics:orders:open"
	CacheKeySyncSynced    = "statistics:sync:synced"
	CacheKeySyncFailed    = "statistics:sync:failed"
	CacheExpiration       = 30 * time.Minute
)

// StatisticsData holds the counts shown on the admin dashboard.
type StatisticsData struct {
	TotalPackages  int `json:"total_packages"`
	OpenOrders     int `json:"open_orders"`
	SyncedPackages int `json:"synced_packages"`
	FailedSyncs    int `json:"failed_syncs"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// UpdateCacheIfNeeded refreshes the cached counts at most once per interval.
func UpdateCacheIfNeeded() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if time.Since(lastCacheUpdate) <= cacheUpdateInterval {
		return
	}
	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("Failed to update statistics cache: %v", err)
		return
	}
	lastCacheUpdate = time.Now()
}

// UpdateStatisticsCache recomputes all dashboard counts from the database
// and stores them in the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalPackages, openOrders, synced, failed int64
	if err := db.Model(&models.Package{}).Count(&totalPackages).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusPending, models.OrderStatusPaid}).
		Count(&openOrders).Error; err != nil {
		return err
	}
	if err := db.Model(&models.PackageSyncState{}).
		Where("status = ?", models.SyncStatusSynced).Count(&synced).Error; err != nil {
		return err
	}
	if err := db.Model(&models.PackageSyncState{}).
		Where("status = ?", models.SyncStatusFailed).Count(&failed).Error; err != nil {
		return err
	}

	for key, val := range map[string]int64{
		CacheKeyPackagesTotal: totalPackages,
		CacheKeyOrdersOpen:    openOrders,
		CacheKeySyncSynced:    synced,
		CacheKeySyncFailed:    failed,
	} {
		if err := cache.Set(key, strconv.FormatInt(val, 10), CacheExpiration); err != nil {
			return err
		}
	}
	return nil
}

// GetStatistics returns the cached dashboard counts, refreshing the cache
// when it is stale or missing.
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	read := func(key string) int {
		v, err := cache.GetInt(key)
		if err != nil {
			return 0
		}
		return v
	}

	return StatisticsData{
		TotalPackages:  read(CacheKeyPackagesTotal),
		OpenOrders:     read(CacheKeyOrdersOpen),
		SyncedPackages: read(CacheKeySyncSynced),
		FailedSyncs:    read(CacheKeySyncFailed),
	}
}

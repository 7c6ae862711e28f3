package db

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&UserUsage{}))

	// A single connection serializes writes; sqlite has no row locks.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return gdb
}

func TestGetOrCreateUsage(t *testing.T) {
	gdb := newTestDB(t)

	usage, err := GetOrCreateUsage(gdb, "203.0.113.9", "fp-one")
	require.NoError(t, err)
	assert.Equal(t, 0, usage.UsageCount)
	assert.NotZero(t, usage.ID)

	again, err := GetOrCreateUsage(gdb, "203.0.113.9", "fp-one")
	require.NoError(t, err)
	assert.Equal(t, usage.ID, again.ID)

	other, err := GetOrCreateUsage(gdb, "203.0.113.9", "fp-two")
	require.NoError(t, err)
	assert.NotEqual(t, usage.ID, other.ID)
}

func TestIncrementUsage(t *testing.T) {
	gdb := newTestDB(t)

	usage, err := GetOrCreateUsage(gdb, "203.0.113.9", "fp-one")
	require.NoError(t, err)

	count, err := IncrementUsage(gdb, usage, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, usage.UsageCount)
	assert.False(t, usage.LastUsed.IsZero())

	count, err = IncrementUsage(gdb, usage, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIncrementUsageStopsAtCeiling(t *testing.T) {
	gdb := newTestDB(t)

	usage, err := GetOrCreateUsage(gdb, "203.0.113.9", "fp-one")
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		count, err := IncrementUsage(gdb, usage, 2)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	count, err := IncrementUsage(gdb, usage, 2)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, usage.UsageCount)
}

func TestConcurrentIncrementsLoseNothing(t *testing.T) {
	gdb := newTestDB(t)
	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usage, err := GetOrCreateUsage(gdb, "198.51.100.7", "fp-shared")
			if err != nil {
				errs <- err
				return
			}
			if _, err := IncrementUsage(gdb, usage, workers); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var rows int64
	require.NoError(t, gdb.Model(&UserUsage{}).
		Where("ip_address = ? AND device_fingerprint = ?", "198.51.100.7", "fp-shared").
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	usage, err := GetOrCreateUsage(gdb, "198.51.100.7", "fp-shared")
	require.NoError(t, err)
	assert.Equal(t, workers, usage.UsageCount)
}

func TestConcurrentIncrementsRespectCeiling(t *testing.T) {
	gdb := newTestDB(t)
	const workers = 20
	const ceiling = 7

	// Every worker sees a gate-passing record before any increment
	// lands, the worst-case interleaving for the last slot.
	seed, err := GetOrCreateUsage(gdb, "198.51.100.7", "fp-shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := *seed
			_, err := IncrementUsage(gdb, &local, ceiling)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for err := range results {
		if err == nil {
			granted++
		} else {
			require.ErrorIs(t, err, ErrQuotaExceeded)
		}
	}
	assert.Equal(t, ceiling, granted)

	usage, err := GetOrCreateUsage(gdb, "198.51.100.7", "fp-shared")
	require.NoError(t, err)
	assert.Equal(t, ceiling, usage.UsageCount)
}

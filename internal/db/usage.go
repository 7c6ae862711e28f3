package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrQuotaExceeded is returned by IncrementUsage when the counter is
// already at the ceiling, including the case where a concurrent request
// consumed the last slot after the caller's gate check.
var ErrQuotaExceeded = errors.New("usage quota exceeded")

// GetOrCreateUsage returns the usage record for the given identity,
// creating it with a zero count on first sight. Safe under concurrent
// first requests for the same identity: the insert is insert-or-ignore
// against the composite unique index, and whichever request loses the
// race reads back the winner's row.
func GetOrCreateUsage(db *gorm.DB, ip, fingerprint string) (*UserUsage, error) {
	var usage UserUsage
	err := db.Where("ip_address = ? AND device_fingerprint = ?", ip, fingerprint).
		First(&usage).Error
	if err == nil {
		return &usage, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := UserUsage{
		IPAddress:         ip,
		DeviceFingerprint: fingerprint,
		LastUsed:          time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	if err := db.Where("ip_address = ? AND device_fingerprint = ?", ip, fingerprint).
		First(&usage).Error; err != nil {
		return nil, err
	}
	return &usage, nil
}

// IncrementUsage bumps the usage counter by one and stamps last_used,
// but only while the counter is below max. Both the check and the
// increment happen in one SQL statement, so two concurrent requests
// racing for the last slot cannot both win: the loser's update affects
// no rows and ErrQuotaExceeded is returned. The record is refreshed in
// place either way. A storage failure here is a hard error for the
// caller: quota enforcement must not silently degrade.
func IncrementUsage(db *gorm.DB, usage *UserUsage, max int) (int, error) {
	res := db.Model(&UserUsage{}).
		Where("id = ? AND usage_count < ?", usage.ID, max).
		Updates(map[string]any{
			"usage_count": gorm.Expr("usage_count + ?", 1),
			"last_used":   time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	var fresh UserUsage
	if err := db.First(&fresh, usage.ID).Error; err != nil {
		return 0, err
	}
	*usage = fresh

	if res.RowsAffected == 0 {
		return fresh.UsageCount, ErrQuotaExceeded
	}
	return fresh.UsageCount, nil
}

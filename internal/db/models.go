package db

import (
	"time"
)

// UserUsage tracks how many analyses a client identity has consumed.
// Identity is the (IP address, device fingerprint) pair; the composite
// unique index is what keeps concurrent first requests from creating
// duplicate rows for the same client.
type UserUsage struct {
	ID uint `gorm:"primaryKey"`

	// IPAddress is the resolved client address. IPv6 can be up to 45 chars.
	IPAddress string `gorm:"uniqueIndex:idx_user_usage_identity,priority:1;size:45;not null"`

	// DeviceFingerprint is the 64-char hex SHA-256 of weak header signals.
	DeviceFingerprint string `gorm:"uniqueIndex:idx_user_usage_identity,priority:2;size:64;not null"`

	// UsageCount is monotonically non-decreasing over the row's lifetime.
	UsageCount int `gorm:"not null;default:0"`

	LastUsed  time.Time
	CreatedAt time.Time
}

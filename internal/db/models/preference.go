package models

import "time"

// Preference holds the JSON encoded accessibility record of one user.
type Preference struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"uniqueIndex;not null"`
	Value     []byte
	UpdatedAt time.Time
}

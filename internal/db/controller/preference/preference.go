// Package preference provides CRUD operations for the accessibility
// preferences of logged in users.
package preference

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/models"
)

const (
	userQueryPattern = "user_id = ?"
)

var (
	// ErrPreferenceNotFound is returned when a user has no stored preference.
	ErrPreferenceNotFound = errors.New("preference not found")
	// ErrUserIDZero is returned for the anonymous user id 0.
	ErrUserIDZero = errors.New("user id cannot be zero")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the preference of a user.
func Get(db *gorm.DB, userID uint64) (*models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if userID == 0 {
		return nil, ErrUserIDZero
	}

	var pref models.Preference

	result := db.Where(userQueryPattern, userID).First(&pref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}

		return nil, result.Error
	}

	return &pref, nil
}

// Set creates or replaces the preference of a user.
func Set(db *gorm.DB, userID uint64, value []byte) (*models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if userID == 0 {
		return nil, ErrUserIDZero
	}

	pref := &models.Preference{
		UserID: userID,
		Value:  value,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref)
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db, userID)
}

// Delete removes the preference of a user. Deleting a missing preference
// is not an error.
func Delete(db *gorm.DB, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if userID == 0 {
		return ErrUserIDZero
	}

	return db.Where(userQueryPattern, userID).Delete(&models.Preference{}).Error
}

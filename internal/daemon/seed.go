package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/auth"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/models"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/navigation"
)

const (
	defaultUsername = "admin"
	defaultPassword = "changeme"
)

// seed creates the default account if the user table is empty.
func seed(_ *config.Config, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return nil
	}

	if _, err := auth.NewLocalProvider(db).CreateUser(defaultUsername, "", defaultPassword); err != nil {
		return errors.Wrap(err, "failed to seed default user")
	}

	log.Warn().Str("username", defaultUsername).Str("path", navigation.PasswordPath).
		Msg("created default user, change its password")

	return nil
}

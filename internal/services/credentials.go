package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cattery-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminPasswordKey  = "admin_password"
	MinPasswordLength = 6
)

// CredentialStore guards the single admin password row in admin_settings.
type CredentialStore struct {
	DB *sqlx.DB
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

func NewCredentialStore(db *sqlx.DB) *CredentialStore {
	return &CredentialStore{DB: db}
}

func (c *CredentialStore) load(ctx context.Context) (models.AdminSetting, error) {
	var row models.AdminSetting
	err := c.DB.GetContext(ctx, &row, c.DB.Rebind(`
SELECT id, setting_key, setting_value, updated_at
FROM admin_settings
WHERE setting_key = ?
`), AdminPasswordKey)
	if errors.Is(err, sql.ErrNoRows) {
		return row, ErrMisconfigured("Admin password not configured")
	}
	return row, err
}

// Verify reports whether plain matches the stored admin hash.
func (c *CredentialStore) Verify(ctx context.Context, plain string) (bool, error) {
	row, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	return VerifyPassword(plain, row.SettingValue), nil
}

// Rotate replaces the admin hash once current is verified and candidate is
// long enough.
func (c *CredentialStore) Rotate(ctx context.Context, current, candidate string) error {
	row, err := c.load(ctx)
	if err != nil {
		return err
	}
	if !VerifyPassword(current, row.SettingValue) {
		return ErrUnauthorized("Current password is incorrect")
	}
	if len(candidate) < MinPasswordLength {
		return ErrBadRequest("New password must be at least 6 characters")
	}
	hash, err := HashPassword(candidate, c.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return ErrBadRequest("New password must be at most 72 bytes")
	}
	if err != nil {
		return WrapError(err, "hash password")
	}
	_, err = c.DB.ExecContext(ctx, c.DB.Rebind(`
UPDATE admin_settings SET setting_value = ?, updated_at = ? WHERE id = ?
`), hash, time.Now().UTC(), row.ID)
	return WrapError(err, "store password")
}

// EnsureAdminCredential seeds the admin row from defaultPassword when it is
// missing and reports whether it did so.
func (c *CredentialStore) EnsureAdminCredential(ctx context.Context, defaultPassword string) (bool, error) {
	var exists bool
	if err := c.DB.GetContext(ctx, &exists, c.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM admin_settings WHERE setting_key = ?)`), AdminPasswordKey); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := HashPassword(defaultPassword, c.Cost)
	if err != nil {
		return false, WrapError(err, "hash default password")
	}
	_, err = c.DB.ExecContext(ctx, c.DB.Rebind(`
INSERT INTO admin_settings (setting_key, setting_value, updated_at) VALUES (?, ?, ?)
`), AdminPasswordKey, hash, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return true, nil
}

package seeders

import (
	"context"
	"errors"

	"msc-booking/config"
	"msc-booking/logger"
	adminModel "msc-booking/models/admin"
	"msc-booking/storage"
	"msc-booking/utils"

	"github.com/google/uuid"
)

// SeedDefaultAdmin provisions the initial dashboard account when the store
// holds none. Existing accounts are never touched.
func SeedDefaultAdmin(ctx context.Context, store storage.IStorage, cfg config.Config) error {
	count, err := store.Admin().Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		logger.Warning("ADMIN_PASSWORD not set, skipping default admin seeding")
		return nil
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &adminModel.Admin{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
	}
	if err := store.Admin().Create(ctx, admin); err != nil {
		// A concurrent process may have seeded first; that is fine.
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil
		}
		return err
	}

	logger.Success("Seeded default admin account " + admin.Email)
	return nil
}

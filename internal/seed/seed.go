package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/repositories"
	"github.com/ozank/stationhub/internal/config"
	"github.com/ozank/stationhub/internal/pkg/auth"
)

// CreateDefaultAdmin creates a bootstrap admin account when the users
// collection is empty, so a fresh deployment has a way in. Skipped when no
// seed password is configured.
func CreateDefaultAdmin(ctx context.Context, userRepo repositories.IUserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminPassword == "" {
		lgr.Debug().Msg("No seed admin password configured, skipping seed")
		return nil
	}

	count, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &models.User{
		Email:    cfg.Seed.AdminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("email", admin.Email).Msg("Seed admin account created")
	return nil
}

package organizers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/constants"
	"venuebook/pkg/logger"
)

// EnsureDefaultAdmin creates the configured admin account if it does not
// exist yet. It is safe to run on every start.
func EnsureDefaultAdmin(ctx context.Context, repo Repository, cfg config.AdminConfig, log *logger.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Info("Admin bootstrap skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	existing, err := repo.FindByEmail(ctx, cfg.Email)
	if err == nil {
		if existing.Role != constants.RoleAdmin {
			log.Warn("Admin bootstrap: account exists without admin role", slog.String("email", existing.Email))
		}
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &Organizer{
		Name:     cfg.Name,
		Email:    cfg.Email,
		Password: string(hash),
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		// another instance won the race
		if errors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	log.Info("Default admin account created", slog.String("email", admin.Email))
	return nil
}

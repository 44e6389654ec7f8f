package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GhostNetwork/account/internal/config"
	"github.com/GhostNetwork/account/internal/db/models"
	"github.com/GhostNetwork/account/internal/identity"
)

// seed creates the configured roles that do not exist yet.
func seed(ctx context.Context, cfg *config.Config, roles identity.RoleStore) error {
	for _, name := range cfg.Roles {
		normalized := identity.Normalize(name)

		existing, err := roles.FindByNormalizedName(ctx, normalized)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		if existing != nil {
			continue
		}

		if err = roles.Create(ctx, &models.Role{Name: name, NormalizedName: normalized}); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}

		log.Info().Str("role", name).Msg("role seeded")
	}

	return nil
}

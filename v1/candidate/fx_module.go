package candidate

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/postgres"
)

// FXModule provides the GORM-backed Store and the Resolver.
var FXModule = fx.Module("candidate",
	fx.Provide(
		NewGormStoreWithDI,
		func(s *GormStore) Store { return s },
		NewResolverWithDI,
	),
	fx.Invoke(RegisterMigration),
)

// NewGormStoreWithDI builds the store over the shared postgres connection.
func NewGormStoreWithDI(pg *postgres.Postgres, cfg Config) (*GormStore, error) {
	return NewGormStore(pg, cfg)
}

// NewResolverWithDI builds the resolver from the container.
func NewResolverWithDI(store Store, log *logger.Logger) *Resolver {
	return NewResolver(store, log)
}

// RegisterMigration creates the tag_matches table on start when enabled.
func RegisterMigration(lc fx.Lifecycle, store *GormStore, cfg Config, log *logger.Logger) {
	if !cfg.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Migrating tag_matches table", nil, nil)
			return store.Migrate(ctx)
		},
	})
}

package components

import (
	"log/slog"

	"tablebook/internal/infra/cache"
	"tablebook/internal/infra/db"
	"tablebook/internal/infra/readstore"
	repo_impl "tablebook/internal/infra/repository"
	"tablebook/internal/infra/uow"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(commands.EngineReads)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponLookup)),
		),
		fx.Annotate(
			readstore.NewStaffReadStore,
			fx.As(new(usecase.StaffRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingWriter)),
		),
		fx.Annotate(
			NewAvailabilityCache,
			fx.As(new(queries.AvailabilityCache)),
		),
		fx.Annotate(
			NewAvailabilityCache,
			fx.As(new(commands.CacheInvalidator)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewAvailabilityCache(client *redis.Client, cfg config.Config, logger *slog.Logger) *cache.AvailabilityCache {
	return cache.NewAvailabilityCache(client, cfg.Cache.AvailabilityTTL, logger)
}

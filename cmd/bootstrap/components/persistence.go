package components

import (
	"log/slog"

	"rental-booking/internal/infra/memory"
	"rental-booking/internal/infra/readstore"
	"rental-booking/internal/infra/uow"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStorage,
	),
)

// NewStorage selects the storage driver. Both drivers serve the write side and
// the read side from the same store.
func NewStorage(cfg config.Config, pool *pgxpool.Pool) (shared.UnitOfWork, queries.BookingReadStore, error) {
	if !cfg.Storage.UsesMemory() {
		return uow.NewPostgresUoW(pool), readstore.NewBookingReadStore(pool), nil
	}

	slog.Warn("using in-memory storage; bookings are lost on restart")
	store := memory.NewStore()
	if path := cfg.Storage.MemorySeedFile; path != "" {
		n, err := store.SeedFromFile(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("memory storage seeded", slog.String("file", path), slog.Int("rentals", n))
	} else {
		slog.Warn("no MEMORY_SEED_FILE set; the memory driver has no rentals to book")
	}
	return store, store, nil
}

package components

import (
	"booking-marketplace/internal/infra/readstore"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/infra/uow"
	"booking-marketplace/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write-side repositories are not in the graph: the unit of work binds them to each transaction.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
		uow.NewPostgresUoW,
	),
	readstoreModule,
)

// Query-side stores run on the pool outside any transaction.
var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		NewReservationReadStore,
		NewShopReadStore,
		NewPointReadStore,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewReservationReadStore(q *sqlc.Queries, db sqlc.DBTX) queries.ReservationReadStore {
	return readstore.NewReservationReadStore(q, db)
}

func NewShopReadStore(q *sqlc.Queries, db sqlc.DBTX) queries.ShopReadStore {
	return readstore.NewShopReadStore(q, db)
}

func NewPointReadStore(q *sqlc.Queries, db sqlc.DBTX) queries.PointReadStore {
	return readstore.NewPointReadStore(q, db)
}

package queries

import (
	"context"
	"log/slog"
	"time"

	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPointAccess = errs.New("point ledger access denied")

type PointReadStore interface {
	Ledger(ctx context.Context, userID uuid.UUID) (*point.Ledger, error)
	HistoryFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*PointHistoryItem, error)
	HistoryKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*PointHistoryItem, error)
}

type PointQueries interface {
	// Balance derives the balance at asOf. A nil asOf means now and may be served from cache.
	Balance(ctx context.Context, userID uuid.UUID, actor user.Actor, asOf *time.Time) (*BalanceView, error)
	History(ctx context.Context, userID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*PointHistoryItem, *Cursor, error)
}

type pointQueriesImpl struct {
	store    PointReadStore
	cache    shared.BalanceCache
	clock    clock.Clock
	cacheTTL time.Duration
}

func NewPointQueries(store PointReadStore, cache shared.BalanceCache, clk clock.Clock, cfg config.PointsConfig) PointQueries {
	return &pointQueriesImpl{
		store:    store,
		cache:    cache,
		clock:    clk,
		cacheTTL: cfg.BalanceCacheTTL,
	}
}

func (q *pointQueriesImpl) Balance(ctx context.Context, userID uuid.UUID, actor user.Actor, asOf *time.Time) (*BalanceView, error) {
	if !canReadLedger(userID, actor) {
		return nil, ErrPointAccess
	}

	now := q.clock.Now()
	if asOf != nil {
		ledger, err := q.store.Ledger(ctx, userID)
		if err != nil {
			return nil, err
		}
		return balanceFromLedger(ledger, *asOf), nil
	}

	if view, ok := q.cached(ctx, userID, now); ok {
		return view, nil
	}

	ledger, err := q.store.Ledger(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := balanceFromLedger(ledger, now)

	ttl := q.cacheTTL
	if view.NextAvailableAt != nil {
		ttl = min(ttl, view.NextAvailableAt.Sub(now))
	}
	if ttl > 0 {
		entry := shared.CachedBalance{
			UserID:          view.UserID,
			Balance:         view.Balance,
			Available:       view.Available,
			Pending:         view.Pending,
			NextAvailableAt: view.NextAvailableAt,
			ComputedAt:      now,
		}
		if err := q.cache.Set(ctx, entry, ttl); err != nil {
			slog.Warn("failed to cache point balance", "user_id", userID.String(), "error", err.Error())
		}
	}
	return view, nil
}

// cached ignores entries that a pending credit has unlocked since they were computed.
func (q *pointQueriesImpl) cached(ctx context.Context, userID uuid.UUID, now time.Time) (*BalanceView, bool) {
	entry, ok, err := q.cache.Get(ctx, userID)
	if err != nil {
		slog.Warn("point balance cache unavailable", "user_id", userID.String(), "error", err.Error())
		return nil, false
	}
	if !ok || (entry.NextAvailableAt != nil && !now.Before(*entry.NextAvailableAt)) {
		return nil, false
	}
	return &BalanceView{
		UserID:          entry.UserID,
		Balance:         entry.Balance,
		Available:       entry.Available,
		Pending:         entry.Pending,
		NextAvailableAt: entry.NextAvailableAt,
		AsOf:            now,
	}, true
}

func (q *pointQueriesImpl) History(ctx context.Context, userID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*PointHistoryItem, *Cursor, error) {
	if !canReadLedger(userID, actor) {
		return nil, nil, ErrPointAccess
	}

	limit = ValidateLimit(limit)
	var rows []*PointHistoryItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.HistoryFirstPage(ctx, userID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.HistoryKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func canReadLedger(userID uuid.UUID, actor user.Actor) bool {
	return actor.IsPrivileged() || actor.ID == userID
}

func balanceFromLedger(l *point.Ledger, asOf time.Time) *BalanceView {
	balance := l.Balance()
	available := l.Available(asOf)
	return &BalanceView{
		UserID:          l.UserID(),
		Balance:         balance,
		Available:       available,
		Pending:         balance - available,
		NextAvailableAt: l.NextAvailability(asOf),
		AsOf:            asOf,
	}
}

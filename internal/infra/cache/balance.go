package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const balanceKeyPrefix = "points:balance:"

// BalanceCache stores derived point balances as JSON under one key per user.
type BalanceCache struct {
	rdb redis.Cmdable
}

func NewBalanceCache(rdb redis.Cmdable) *BalanceCache {
	return &BalanceCache{rdb: rdb}
}

func balanceKey(userID uuid.UUID) string {
	return balanceKeyPrefix + userID.String()
}

func (c *BalanceCache) Get(ctx context.Context, userID uuid.UUID) (*shared.CachedBalance, bool, error) {
	raw, err := c.rdb.Get(ctx, balanceKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "read cached balance")
	}

	var b shared.CachedBalance
	if err := json.Unmarshal(raw, &b); err != nil {
		// unreadable entries are treated as misses and overwritten on the next Set
		return nil, false, nil
	}
	return &b, true, nil
}

func (c *BalanceCache) Set(ctx context.Context, b shared.CachedBalance, ttl time.Duration) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return errs.Wrap(err, "encode cached balance")
	}
	if err := c.rdb.Set(ctx, balanceKey(b.UserID), payload, ttl).Err(); err != nil {
		return errs.Wrap(err, "write cached balance")
	}
	return nil
}

func (c *BalanceCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = balanceKey(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return errs.Wrap(err, "invalidate cached balances")
	}
	return nil
}

// NoopBalanceCache disables caching. Every read misses.
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(context.Context, uuid.UUID) (*shared.CachedBalance, bool, error) {
	return nil, false, nil
}

func (NoopBalanceCache) Set(context.Context, shared.CachedBalance, time.Duration) error { return nil }

func (NoopBalanceCache) Invalidate(context.Context, ...uuid.UUID) error { return nil }

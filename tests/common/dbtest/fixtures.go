//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Execer is satisfied by a pool, a connection and a transaction, so fixtures can seed inside a test tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db Execer, email, role string, isInfluencer bool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, role, is_influencer) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, role, isInfluencer)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}
	return userID
}

type ShopFixture struct {
	OwnerID          uuid.UUID
	Granularity      string
	DepositRate      string
	OpenMinute       int
	CloseMinute      int
	BreakStartMinute *int
	BreakEndMinute   *int
	MinDuration      int
	MaxDuration      int
}

func DefaultShopFixture(ownerID uuid.UUID) ShopFixture {
	return ShopFixture{
		OwnerID:     ownerID,
		Granularity: "shop",
		DepositRate: "20",
		OpenMinute:  9 * 60,
		CloseMinute: 21 * 60,
		MinDuration: 30,
		MaxDuration: 240,
	}
}

// CreateTestShop inserts a shop open every weekday with the fixture's hours.
func CreateTestShop(t *testing.T, db Execer, f ShopFixture) uuid.UUID {
	t.Helper()

	shopID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `INSERT INTO shops (id, owner_id, name, time_zone, min_duration_minutes, max_duration_minutes, granularity, deposit_rate_percent)
		VALUES ($1, $2, $3, 'Asia/Seoul', $4, $5, $6, $7::numeric)`,
		shopID, f.OwnerID, "shop-"+shopID.String()[:8], f.MinDuration, f.MaxDuration, f.Granularity, f.DepositRate)
	require.NoError(t, err)

	for weekday := 0; weekday < 7; weekday++ {
		_, err = db.Exec(ctx, `INSERT INTO shop_operating_hours (shop_id, weekday, closed, open_minute, close_minute, break_start_minute, break_end_minute)
			VALUES ($1, $2, false, $3, $4, $5, $6)`,
			shopID, weekday, f.OpenMinute, f.CloseMinute, f.BreakStartMinute, f.BreakEndMinute)
		require.NoError(t, err)
	}
	return shopID
}

func CreateTestResource(t *testing.T, db Execer, shopID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO shop_resources (id, shop_id, name) VALUES ($1, $2, $3)", id, shopID, name)
	require.NoError(t, err)
	return id
}

func CreateTestService(t *testing.T, db Execer, shopID uuid.UUID, name string, price int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO shop_services (id, shop_id, name, price) VALUES ($1, $2, $3, $4)", id, shopID, name, price)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}

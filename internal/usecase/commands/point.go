package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

const expiryScanBatch = 200

var ErrNothingEarned = errs.New("base amount earns no points")

type PointEntryResult struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Seq           int64
	Amount        int64
	Type          point.Type
	Reason        point.Reason
	BalanceAfter  int64
	AvailableAt   time.Time
}

type PointCommands interface {
	Earn(ctx context.Context, userID, reservationID uuid.UUID, baseAmount int64) (*PointEntryResult, error)
	// CreditBonus is the entry point of the referral collaborator.
	CreditBonus(ctx context.Context, userID uuid.UUID, amount int64, reason point.Reason) (*PointEntryResult, error)
	Use(ctx context.Context, userID uuid.UUID, amount int64, reservationID *uuid.UUID) (*PointEntryResult, error)
	Adjust(ctx context.Context, userID uuid.UUID, amount int64) (*PointEntryResult, error)
	// ExpirePoints appends expiry entries for every user with credits past the expiry window.
	ExpirePoints(ctx context.Context) (int, error)
}

type pointUseCaseImpl struct {
	uow    shared.UnitOfWork
	cache  shared.BalanceCache
	policy point.Policy
	clock  clock.Clock
}

func NewPointUseCase(uow shared.UnitOfWork, cache shared.BalanceCache, policy point.Policy, clk clock.Clock) PointCommands {
	return &pointUseCaseImpl{
		uow:    uow,
		cache:  cache,
		policy: policy,
		clock:  clk,
	}
}

func (p *pointUseCaseImpl) Earn(ctx context.Context, userID, reservationID uuid.UUID, baseAmount int64) (*PointEntryResult, error) {
	return p.appendOne(ctx, userID, func(ctx context.Context, tx shared.Tx, ledger *point.Ledger, now time.Time) (*point.Transaction, error) {
		customer, err := tx.Reads().UserByID(ctx, userID)
		if err != nil {
			return nil, storeErr(err)
		}
		earned := p.policy.EarnedFor(baseAmount, customer.IsInfluencer)
		if earned <= 0 {
			return nil, ErrNothingEarned
		}
		return ledger.Earn(earned, reservationID, p.policy.AvailableAt(now), now)
	})
}

func (p *pointUseCaseImpl) CreditBonus(ctx context.Context, userID uuid.UUID, amount int64, reason point.Reason) (*PointEntryResult, error) {
	return p.appendOne(ctx, userID, func(_ context.Context, _ shared.Tx, ledger *point.Ledger, now time.Time) (*point.Transaction, error) {
		return ledger.CreditBonus(p.policy.BonusFor(amount), reason, p.policy.AvailableAt(now), now)
	})
}

func (p *pointUseCaseImpl) Use(ctx context.Context, userID uuid.UUID, amount int64, reservationID *uuid.UUID) (*PointEntryResult, error) {
	return p.appendOne(ctx, userID, func(_ context.Context, _ shared.Tx, ledger *point.Ledger, now time.Time) (*point.Transaction, error) {
		return ledger.Use(amount, reservationID, now)
	})
}

func (p *pointUseCaseImpl) Adjust(ctx context.Context, userID uuid.UUID, amount int64) (*PointEntryResult, error) {
	return p.appendOne(ctx, userID, func(_ context.Context, _ shared.Tx, ledger *point.Ledger, now time.Time) (*point.Transaction, error) {
		return ledger.Adjust(amount, now)
	})
}

type ledgerOp func(ctx context.Context, tx shared.Tx, ledger *point.Ledger, now time.Time) (*point.Transaction, error)

// appendOne loads the ledger, applies op and appends the entry. A concurrent append that claimed
// the same sequence number fails the unit of work with errs.ErrConcurrentModification.
func (p *pointUseCaseImpl) appendOne(ctx context.Context, userID uuid.UUID, op ledgerOp) (*PointEntryResult, error) {
	var entry *point.Transaction
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := p.clock.Now()
		ledger, err := tx.Points().LoadLedger(ctx, tx.DB(), userID)
		if err != nil {
			return storeErr(err)
		}
		entry, err = op(ctx, tx, ledger, now)
		if err != nil {
			return err
		}
		return storeErr(tx.Points().Append(ctx, tx.DB(), entry))
	})
	if err != nil {
		return nil, err
	}

	p.invalidate(ctx, userID)
	return toEntryResult(entry), nil
}

func (p *pointUseCaseImpl) ExpirePoints(ctx context.Context) (int, error) {
	now := p.clock.Now()
	createdBefore := now.AddDate(0, 0, -p.policy.ExpiryDays())

	total := 0
	after := uuid.Nil
	for {
		var users []uuid.UUID
		err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var lerr error
			users, lerr = tx.Points().ListUsersWithExpirableCredits(ctx, tx.DB(), createdBefore, after, expiryScanBatch)
			return storeErr(lerr)
		})
		if err != nil {
			return total, err
		}

		for _, userID := range users {
			n, err := p.expireUser(ctx, userID, now)
			if err != nil {
				slog.Warn("failed to expire points", "user_id", userID.String(), "error", err.Error())
				continue
			}
			total += n
		}

		if len(users) < expiryScanBatch {
			return total, nil
		}
		after = users[len(users)-1]
	}
}

func (p *pointUseCaseImpl) expireUser(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	var appended int
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appended = 0
		ledger, err := tx.Points().LoadLedger(ctx, tx.DB(), userID)
		if err != nil {
			return storeErr(err)
		}
		entries := ledger.Expire(p.policy, now)
		if len(entries) == 0 {
			return nil
		}
		if err = tx.Points().Append(ctx, tx.DB(), entries...); err != nil {
			return storeErr(err)
		}
		// zero-amount markers close out spent credits and do not move the balance
		for _, e := range entries {
			if e.Amount() != 0 {
				appended++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if appended > 0 {
		p.invalidate(ctx, userID)
	}
	return appended, nil
}

func (p *pointUseCaseImpl) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := p.cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("failed to invalidate point balance cache", "user_id", userID.String(), "error", err.Error())
	}
}

func toEntryResult(t *point.Transaction) *PointEntryResult {
	return &PointEntryResult{
		TransactionID: t.ID(),
		UserID:        t.UserID(),
		Seq:           t.Seq(),
		Amount:        t.Amount(),
		Type:          t.Type(),
		Reason:        t.Reason(),
		BalanceAfter:  t.BalanceAfter(),
		AvailableAt:   t.AvailableAt(),
	}
}

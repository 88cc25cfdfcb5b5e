package point

import (
	"fmt"
	"sort"
	"time"

	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInsufficientBalance = errs.New("insufficient point balance")
	ErrInvalidAmount       = errs.New("point amount must be positive")
	ErrInvalidReason       = errs.New("reason is not allowed for this entry type")
)

// InsufficientBalanceError matches ErrInsufficientBalance with errors.Is.
type InsufficientBalanceError struct {
	Available int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: available %d, requested %d", ErrInsufficientBalance.Error(), e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Ledger is the complete entry history of one user. New entries are appended in memory and
// returned so the caller can persist them with their sequence numbers.
type Ledger struct {
	userID  uuid.UUID
	entries []*Transaction
}

func NewLedger(userID uuid.UUID, entries []*Transaction) *Ledger {
	sorted := make([]*Transaction, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seq < sorted[j].seq })
	return &Ledger{userID: userID, entries: sorted}
}

func (l *Ledger) UserID() uuid.UUID { return l.userID }

func (l *Ledger) Entries() []*Transaction {
	out := make([]*Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Balance is the sum of every entry, including earned points that are not yet available.
func (l *Ledger) Balance() int64 {
	var sum int64
	for _, e := range l.entries {
		sum += e.amount
	}
	return sum
}

// Available is the spendable balance at asOf: every entry except earned entries still pending.
func (l *Ledger) Available(asOf time.Time) int64 {
	var sum int64
	for _, e := range l.entries {
		if e.IsPending(asOf) {
			continue
		}
		sum += e.amount
	}
	return sum
}

// NextAvailability returns the earliest instant after asOf at which a pending entry unlocks.
func (l *Ledger) NextAvailability(asOf time.Time) *time.Time {
	var next *time.Time
	for _, e := range l.entries {
		if !e.IsPending(asOf) {
			continue
		}
		if next == nil || e.availableAt.Before(*next) {
			t := e.availableAt
			next = &t
		}
	}
	return next
}

func (l *Ledger) nextSeq() int64 {
	if len(l.entries) == 0 {
		return 1
	}
	return l.entries[len(l.entries)-1].seq + 1
}

type appendInput struct {
	amount      int64
	txType      Type
	reason      Reason
	availableAt time.Time
	reservation *uuid.UUID
	source      *uuid.UUID
	now         time.Time
}

func (l *Ledger) append(in appendInput) *Transaction {
	t := &Transaction{
		id:                  uuid.New(),
		userID:              l.userID,
		seq:                 l.nextSeq(),
		amount:              in.amount,
		txType:              in.txType,
		reason:              in.reason,
		balanceAfter:        l.Balance() + in.amount,
		availableAt:         in.availableAt,
		reservationID:       in.reservation,
		sourceTransactionID: in.source,
		createdAt:           in.now,
	}
	l.entries = append(l.entries, t)
	return t
}

// Earn credits points for a completed reservation. They become spendable at availableAt.
func (l *Ledger) Earn(amount int64, reservationID uuid.UUID, availableAt, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return l.append(appendInput{
		amount:      amount,
		txType:      TypeEarned,
		reason:      ReasonReservationCompletion,
		availableAt: availableAt,
		reservation: &reservationID,
		now:         now,
	}), nil
}

// CreditBonus credits a referral bonus, subject to the same availability delay as earnings.
func (l *Ledger) CreditBonus(amount int64, reason Reason, availableAt, now time.Time) (*Transaction, error) {
	if !reason.IsReferral() {
		return nil, ErrInvalidReason
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return l.append(appendInput{
		amount:      amount,
		txType:      TypeEarned,
		reason:      reason,
		availableAt: availableAt,
		now:         now,
	}), nil
}

// Use debits spendable points. The balance never goes below zero.
func (l *Ledger) Use(amount int64, reservationID *uuid.UUID, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if available := l.Available(now); available < amount {
		return nil, &InsufficientBalanceError{Available: available, Requested: amount}
	}
	return l.append(appendInput{
		amount:      -amount,
		txType:      TypeUsed,
		reason:      ReasonReservationPayment,
		availableAt: now,
		reservation: reservationID,
		now:         now,
	}), nil
}

// Refund returns points that were used for a reservation that got cancelled.
func (l *Ledger) Refund(amount int64, reservationID uuid.UUID, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return l.append(appendInput{
		amount:      amount,
		txType:      TypeRefunded,
		reason:      ReasonReservationCancellation,
		availableAt: now,
		reservation: &reservationID,
		now:         now,
	}), nil
}

// Adjust appends a signed manual correction. Debits are limited to the available balance.
func (l *Ledger) Adjust(amount int64, now time.Time) (*Transaction, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if amount < 0 {
		if available := l.Available(now); available < -amount {
			return nil, &InsufficientBalanceError{Available: available, Requested: -amount}
		}
	}
	return l.append(appendInput{
		amount:      amount,
		txType:      TypeAdminAdjustment,
		reason:      ReasonAdmin,
		availableAt: now,
		now:         now,
	}), nil
}

// Expire appends one expired entry per credit that is past the expiry window and has none yet.
// A credit that was already spent gets a zero-amount marker so later scans skip it.
// Debits consume credits oldest first.
func (l *Ledger) Expire(policy Policy, now time.Time) []*Transaction {
	remaining := l.creditRemainders()
	expired := l.expiredSources()

	var out []*Transaction
	for _, c := range l.credits() {
		if expired[c.id] || c.IsPending(now) || !policy.ExpiredBy(c.createdAt, now) {
			continue
		}
		source := c.id
		out = append(out, l.append(appendInput{
			amount:      -max(remaining[c.id], 0),
			txType:      TypeExpired,
			reason:      ReasonExpiry,
			availableAt: now,
			source:      &source,
			now:         now,
		}))
	}
	return out
}

func (l *Ledger) expiredSources() map[uuid.UUID]bool {
	seen := make(map[uuid.UUID]bool)
	for _, e := range l.entries {
		if e.txType == TypeExpired && e.sourceTransactionID != nil {
			seen[*e.sourceTransactionID] = true
		}
	}
	return seen
}

// credits returns positive entries in FIFO consumption order.
func (l *Ledger) credits() []*Transaction {
	var cs []*Transaction
	for _, e := range l.entries {
		if e.IsCredit() {
			cs = append(cs, e)
		}
	}
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].availableAt.Equal(cs[j].availableAt) {
			return cs[i].availableAt.Before(cs[j].availableAt)
		}
		return cs[i].seq < cs[j].seq
	})
	return cs
}

// creditRemainders replays the ledger in sequence order and returns the unspent part of each credit.
func (l *Ledger) creditRemainders() map[uuid.UUID]int64 {
	remaining := make(map[uuid.UUID]int64)
	var pool []*Transaction

	for _, e := range l.entries {
		switch {
		case e.IsCredit():
			remaining[e.id] = e.amount
			pool = append(pool, e)
		case e.txType == TypeExpired && e.sourceTransactionID != nil:
			src := *e.sourceTransactionID
			remaining[src] = max(remaining[src]+e.amount, 0)
		case e.amount < 0:
			consumeFIFO(pool, remaining, -e.amount, e.createdAt)
		}
	}
	return remaining
}

func consumeFIFO(pool []*Transaction, remaining map[uuid.UUID]int64, amount int64, at time.Time) {
	ordered := make([]*Transaction, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].availableAt.Equal(ordered[j].availableAt) {
			return ordered[i].availableAt.Before(ordered[j].availableAt)
		}
		return ordered[i].seq < ordered[j].seq
	})

	// spendable credits first, then anything left if the history was adjusted by hand
	for _, pass := range []bool{true, false} {
		for _, c := range ordered {
			if amount == 0 {
				return
			}
			if pass && c.IsPending(at) {
				continue
			}
			take := min(remaining[c.id], amount)
			if take <= 0 {
				continue
			}
			remaining[c.id] -= take
			amount -= take
		}
	}
}

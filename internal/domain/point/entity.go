package point

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one append-only ledger entry. Amount is signed.
type Transaction struct {
	id                  uuid.UUID
	userID              uuid.UUID
	seq                 int64
	amount              int64
	txType              Type
	reason              Reason
	balanceAfter        int64
	availableAt         time.Time
	reservationID       *uuid.UUID
	sourceTransactionID *uuid.UUID
	createdAt           time.Time
}

type ReconstructInput struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Seq                 int64
	Amount              int64
	Type                Type
	Reason              Reason
	BalanceAfter        int64
	AvailableAt         time.Time
	ReservationID       *uuid.UUID
	SourceTransactionID *uuid.UUID
	CreatedAt           time.Time
}

func Reconstruct(in ReconstructInput) *Transaction {
	return &Transaction{
		id:                  in.ID,
		userID:              in.UserID,
		seq:                 in.Seq,
		amount:              in.Amount,
		txType:              in.Type,
		reason:              in.Reason,
		balanceAfter:        in.BalanceAfter,
		availableAt:         in.AvailableAt,
		reservationID:       in.ReservationID,
		sourceTransactionID: in.SourceTransactionID,
		createdAt:           in.CreatedAt,
	}
}

func (t *Transaction) ID() uuid.UUID                   { return t.id }
func (t *Transaction) UserID() uuid.UUID               { return t.userID }
func (t *Transaction) Seq() int64                      { return t.seq }
func (t *Transaction) Amount() int64                   { return t.amount }
func (t *Transaction) Type() Type                      { return t.txType }
func (t *Transaction) Reason() Reason                  { return t.reason }
func (t *Transaction) BalanceAfter() int64             { return t.balanceAfter }
func (t *Transaction) AvailableAt() time.Time          { return t.availableAt }
func (t *Transaction) ReservationID() *uuid.UUID       { return t.reservationID }
func (t *Transaction) SourceTransactionID() *uuid.UUID { return t.sourceTransactionID }
func (t *Transaction) CreatedAt() time.Time            { return t.createdAt }

func (t *Transaction) IsCredit() bool {
	return t.amount > 0
}

// IsPending reports an earned entry that cannot be spent yet.
func (t *Transaction) IsPending(asOf time.Time) bool {
	return t.txType == TypeEarned && t.availableAt.After(asOf)
}

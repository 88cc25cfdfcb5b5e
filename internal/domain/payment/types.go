package payment

import (
	"time"
)

type Stage string

const (
	StageDeposit Stage = "deposit"
	StageFinal   Stage = "final"
)

func (s Stage) String() string {
	return string(s)
}

func (s Stage) IsValid() bool {
	return s == StageDeposit || s == StageFinal
}

func ParseStage(s string) (Stage, error) {
	st := Stage(s)
	if !st.IsValid() {
		return "", ErrInvalidStage
	}
	return st, nil
}

type Status string

const (
	StatusPrepared  Status = "prepared"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPrepared, StatusPaid, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether confirmation has already been decided.
// A paid payment can still be refunded through cancellation.
func (s Status) IsTerminal() bool {
	return s != StatusPrepared
}

// GatewayStatus is the status as reported by the payment gateway.
type GatewayStatus string

const (
	GatewayStatusPending   GatewayStatus = "pending"
	GatewayStatusPaid      GatewayStatus = "paid"
	GatewayStatusFailed    GatewayStatus = "failed"
	GatewayStatusCancelled GatewayStatus = "cancelled"
)

// GatewayPayment is the authoritative record fetched from the gateway.
type GatewayPayment struct {
	ExternalID string
	Status     GatewayStatus
	Amount     int64
	OrderRef   string
	PaidAt     *time.Time
	FailReason string
}

type PreparedIntent struct {
	ExternalID     string
	CheckoutParams map[string]string
}

type CancellationRecord struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type GatewaySnapshot struct {
	Status    GatewayStatus `json:"status"`
	Amount    int64         `json:"amount"`
	OrderRef  string        `json:"order_ref"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Metadata is stored as JSON next to the payment row.
type Metadata struct {
	CheckoutParams map[string]string    `json:"checkout_params,omitempty"`
	Snapshots      []GatewaySnapshot    `json:"snapshots,omitempty"`
	FailureReason  string               `json:"failure_reason,omitempty"`
	Cancellations  []CancellationRecord `json:"cancellations,omitempty"`
}

package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID              uuid.UUID  `json:"id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	ShopID          uuid.UUID  `json:"shop_id"`
	ResourceID      *uuid.UUID `json:"resource_id,omitempty"`
	BusinessDate    time.Time  `json:"business_date"`
	StartTime       string     `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	Status          string     `json:"status"`
	// requested with no deposit paid and no live deposit intent after the prepared TTL
	AwaitingPaymentExpired bool                 `json:"awaiting_payment_expired"`
	SubtotalAmount         int64                `json:"subtotal_amount"`
	PointsUsed             int64                `json:"points_used"`
	TotalAmount            int64                `json:"total_amount"`
	DepositAmount          int64                `json:"deposit_amount"`
	RemainingAmount        int64                `json:"remaining_amount"`
	PointsEarned           int64                `json:"points_earned"`
	CancelReason           *string              `json:"cancel_reason,omitempty"`
	Version                int64                `json:"version"`
	LineItems              []LineItemView       `json:"line_items"`
	Payments               []PaymentSummaryView `json:"payments"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

type LineItemView struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	LineTotal int64     `json:"line_total"`
}

type PaymentSummaryView struct {
	ID                    uuid.UUID  `json:"id"`
	Stage                 string     `json:"stage"`
	ExternalPaymentID     string     `json:"external_payment_id"`
	Amount                int64      `json:"amount"`
	Status                string     `json:"status"`
	RefundedAmount        int64      `json:"refunded_amount"`
	CancellationRequested bool       `json:"cancellation_requested"`
	ExpiresAt             time.Time  `json:"expires_at"`
	PaidAt                *time.Time `json:"paid_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type AvailabilityView struct {
	Available                bool       `json:"available"`
	Reason                   string     `json:"reason,omitempty"`
	ConflictingReservationID *uuid.UUID `json:"conflicting_reservation_id,omitempty"`
	StartsAt                 *time.Time `json:"starts_at,omitempty"`
	EndsAt                   *time.Time `json:"ends_at,omitempty"`
}

type OpenSlotView struct {
	StartTime string    `json:"start_time"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
}

type BalanceView struct {
	UserID          uuid.UUID  `json:"user_id"`
	Balance         int64      `json:"balance"`
	Available       int64      `json:"available"`
	Pending         int64      `json:"pending"`
	NextAvailableAt *time.Time `json:"next_available_at,omitempty"`
	AsOf            time.Time  `json:"as_of"`
}

type PointHistoryItem struct {
	ID            uuid.UUID  `json:"id"`
	Seq           int64      `json:"seq"`
	Amount        int64      `json:"amount"`
	Type          string     `json:"type"`
	Reason        string     `json:"reason"`
	BalanceAfter  int64      `json:"balance_after"`
	AvailableAt   time.Time  `json:"available_at"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ResourceView struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

type ServiceView struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
	Name   string    `json:"name"`
	Price  int64     `json:"price"`
	Active bool      `json:"active"`
}

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsInfluencer bool      `json:"is_influencer"`
}

// BusySlot is an interval held by an active reservation.
type BusySlot struct {
	ReservationID uuid.UUID
	Start         time.Time
	End           time.Time
}

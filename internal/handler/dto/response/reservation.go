package response

import (
	"time"

	"booking-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LineItemResponse struct {
	ServiceID uuid.UUID `json:"serviceId"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
	LineTotal int64     `json:"lineTotal"`
}

type PaymentSummaryResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Stage                 string     `json:"stage"`
	ExternalPaymentID     string     `json:"externalPaymentId"`
	Amount                int64      `json:"amount"`
	Status                string     `json:"status"`
	RefundedAmount        int64      `json:"refundedAmount"`
	CancellationRequested bool       `json:"cancellationRequested"`
	ExpiresAt             time.Time  `json:"expiresAt"`
	PaidAt                *time.Time `json:"paidAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

type ReservationResponse struct {
	ID                     uuid.UUID                `json:"id"`
	CustomerID             uuid.UUID                `json:"customerId"`
	ShopID                 uuid.UUID                `json:"shopId"`
	ResourceID             *uuid.UUID               `json:"resourceId,omitempty"`
	BusinessDate           string                   `json:"businessDate" copier:"-"`
	StartTime              string                   `json:"startTime"`
	DurationMinutes        int                      `json:"durationMinutes"`
	StartsAt               time.Time                `json:"startsAt"`
	EndsAt                 time.Time                `json:"endsAt"`
	Status                 string                   `json:"status"`
	AwaitingPaymentExpired bool                     `json:"awaitingPaymentExpired"`
	SubtotalAmount         int64                    `json:"subtotalAmount"`
	PointsUsed             int64                    `json:"pointsUsed"`
	TotalAmount            int64                    `json:"totalAmount"`
	DepositAmount          int64                    `json:"depositAmount"`
	RemainingAmount        int64                    `json:"remainingAmount"`
	PointsEarned           int64                    `json:"pointsEarned"`
	CancelReason           *string                  `json:"cancelReason,omitempty"`
	Version                int64                    `json:"version"`
	LineItems              []LineItemResponse       `json:"lineItems"`
	Payments               []PaymentSummaryResponse `json:"payments"`
	CreatedAt              time.Time                `json:"createdAt"`
	UpdatedAt              time.Time                `json:"updatedAt"`
}

type CreateReservationResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
	IsReplayed  bool                 `json:"isReplayed"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	// field names match one to one; only the business date needs formatting
	_ = copier.Copy(resp, v)
	resp.BusinessDate = v.BusinessDate.Format(time.DateOnly)
	if resp.LineItems == nil {
		resp.LineItems = []LineItemResponse{}
	}
	if resp.Payments == nil {
		resp.Payments = []PaymentSummaryResponse{}
	}
	return resp
}

type AvailabilityResponse struct {
	Available                bool       `json:"available"`
	Reason                   string     `json:"reason,omitempty"`
	ConflictingReservationID *uuid.UUID `json:"conflictingReservationId,omitempty"`
	StartsAt                 *time.Time `json:"startsAt,omitempty"`
	EndsAt                   *time.Time `json:"endsAt,omitempty"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

type OpenSlotResponse struct {
	StartTime string    `json:"startTime"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

func FromOpenSlots(vs []queries.OpenSlotView) []OpenSlotResponse {
	resp := make([]OpenSlotResponse, 0, len(vs))
	_ = copier.Copy(&resp, vs)
	return resp
}

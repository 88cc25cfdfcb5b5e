package response

import (
	"time"

	"booking-marketplace/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentIntentResponse struct {
	PaymentID         uuid.UUID         `json:"paymentId"`
	ReservationID     uuid.UUID         `json:"reservationId"`
	Stage             string            `json:"stage"`
	ExternalPaymentID string            `json:"externalPaymentId"`
	OrderRef          string            `json:"orderRef"`
	Amount            int64             `json:"amount"`
	Currency          string            `json:"currency"`
	CheckoutParams    map[string]string `json:"checkoutParams,omitempty"`
	ExpiresAt         time.Time         `json:"expiresAt"`
}

func FromPaymentIntent(in *commands.PaymentIntent) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		PaymentID:         in.PaymentID,
		ReservationID:     in.ReservationID,
		Stage:             string(in.Stage),
		ExternalPaymentID: in.ExternalPaymentID,
		OrderRef:          in.OrderRef,
		Amount:            in.Amount,
		Currency:          in.Currency,
		CheckoutParams:    in.CheckoutParams,
		ExpiresAt:         in.ExpiresAt,
	}
}

type ConfirmationResponse struct {
	PaymentID         uuid.UUID `json:"paymentId"`
	ReservationID     uuid.UUID `json:"reservationId"`
	Stage             string    `json:"stage"`
	PaymentStatus     string    `json:"paymentStatus"`
	ReservationStatus string    `json:"reservationStatus"`
	AlreadyProcessed  bool      `json:"alreadyProcessed"`
	RefundScheduled   bool      `json:"refundScheduled"`
	PointsEarned      int64     `json:"pointsEarned"`
}

func FromConfirmation(r *commands.ConfirmationResult) *ConfirmationResponse {
	return &ConfirmationResponse{
		PaymentID:         r.PaymentID,
		ReservationID:     r.ReservationID,
		Stage:             string(r.Stage),
		PaymentStatus:     string(r.PaymentStatus),
		ReservationStatus: string(r.ReservationStatus),
		AlreadyProcessed:  r.AlreadyProcessed,
		RefundScheduled:   r.RefundScheduled,
		PointsEarned:      r.PointsEarned,
	}
}

type CancellationResponse struct {
	PaymentID       uuid.UUID `json:"paymentId"`
	Status          string    `json:"status"`
	CancelledAmount int64     `json:"cancelledAmount"`
	RefundedTotal   int64     `json:"refundedTotal"`
	Refundable      int64     `json:"refundable"`
}

func FromCancellation(r *commands.CancellationResult) *CancellationResponse {
	return &CancellationResponse{
		PaymentID:       r.PaymentID,
		Status:          string(r.Status),
		CancelledAmount: r.CancelledAmount,
		RefundedTotal:   r.RefundedTotal,
		Refundable:      r.Refundable,
	}
}

package request

import "booking-marketplace/internal/domain/payment"

type PreparePaymentRequest struct {
	Stage payment.Stage `json:"stage" binding:"required,oneof=deposit final"`
}

type ConfirmPaymentRequest struct {
	ExternalPaymentID string `json:"externalPaymentId" binding:"required"`
}

type CancelPaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
	// Amount is a partial refund. Omitted means everything refundable.
	Amount *int64 `json:"amount,omitempty" binding:"omitempty,min=1"`
}

package request

import (
	"booking-marketplace/internal/domain/point"

	"github.com/google/uuid"
)

type PointHistoryRequest struct {
	After string `form:"after"`
	Limit int    `form:"limit"`
}

type BonusRequest struct {
	UserID uuid.UUID    `json:"userId" binding:"required"`
	Amount int64        `json:"amount" binding:"required,min=1"`
	Reason point.Reason `json:"reason" binding:"required"`
}

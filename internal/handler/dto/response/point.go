package response

import (
	"time"

	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BalanceResponse struct {
	UserID          uuid.UUID  `json:"userId"`
	Balance         int64      `json:"balance"`
	Available       int64      `json:"available"`
	Pending         int64      `json:"pending"`
	NextAvailableAt *time.Time `json:"nextAvailableAt,omitempty"`
	AsOf            time.Time  `json:"asOf"`
}

func FromBalanceView(v *queries.BalanceView) *BalanceResponse {
	resp := &BalanceResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

type PointHistoryItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	Seq           int64      `json:"seq"`
	Amount        int64      `json:"amount"`
	Type          string     `json:"type"`
	Reason        string     `json:"reason"`
	BalanceAfter  int64      `json:"balanceAfter"`
	AvailableAt   time.Time  `json:"availableAt"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type PointHistoryResponse struct {
	Items []PointHistoryItemResponse `json:"items"`
	Next  string                     `json:"next,omitempty"`
}

func FromPointHistory(items []*queries.PointHistoryItem, next *queries.Cursor) *PointHistoryResponse {
	resp := &PointHistoryResponse{Items: make([]PointHistoryItemResponse, 0, len(items))}
	_ = copier.Copy(&resp.Items, items)
	if next != nil {
		resp.Next = next.After
	}
	return resp
}

type PointEntryResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
	UserID        uuid.UUID `json:"userId"`
	Seq           int64     `json:"seq"`
	Amount        int64     `json:"amount"`
	Type          string    `json:"type"`
	Reason        string    `json:"reason"`
	BalanceAfter  int64     `json:"balanceAfter"`
	AvailableAt   time.Time `json:"availableAt"`
}

func FromPointEntry(r *commands.PointEntryResult) *PointEntryResponse {
	return &PointEntryResponse{
		TransactionID: r.TransactionID,
		UserID:        r.UserID,
		Seq:           r.Seq,
		Amount:        r.Amount,
		Type:          string(r.Type),
		Reason:        string(r.Reason),
		BalanceAfter:  r.BalanceAfter,
		AvailableAt:   r.AvailableAt,
	}
}

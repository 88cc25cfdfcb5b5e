package request

import (
	"strings"
	"time"

	"booking-marketplace/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReserveItem struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateReservationRequest struct {
	ShopID          uuid.UUID     `json:"shopId" binding:"required"`
	ResourceID      *uuid.UUID    `json:"resourceId,omitempty"`
	Date            string        `json:"date" binding:"required"`
	StartTime       string        `json:"startTime" binding:"required"`
	DurationMinutes int           `json:"durationMinutes" binding:"required,min=1"`
	Items           []ReserveItem `json:"items" binding:"required,min=1,dive"`
	PointsToUse     int64         `json:"pointsToUse" binding:"min=0"`
}

func (r CreateReservationRequest) ToInput(customerID uuid.UUID) (commands.ReserveInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return commands.ReserveInput{}, err
	}
	items := make([]commands.ReserveItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.ReserveItem{ServiceID: it.ServiceID, Quantity: it.Quantity}
	}
	return commands.ReserveInput{
		CustomerID:      customerID,
		ShopID:          r.ShopID,
		ResourceID:      r.ResourceID,
		Date:            date,
		StartTime:       strings.TrimSpace(r.StartTime),
		DurationMinutes: r.DurationMinutes,
		Items:           items,
		PointsToUse:     r.PointsToUse,
	}, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type AvailabilityRequest struct {
	ShopID          uuid.UUID  `form:"shopId" binding:"required"`
	ResourceID      *uuid.UUID `form:"resourceId"`
	Date            string     `form:"date" binding:"required"`
	StartTime       string     `form:"startTime" binding:"required"`
	DurationMinutes int        `form:"durationMinutes" binding:"required,min=1"`
}

type OpenSlotsRequest struct {
	ShopID          uuid.UUID  `form:"shopId" binding:"required"`
	ResourceID      *uuid.UUID `form:"resourceId"`
	Date            string     `form:"date" binding:"required"`
	DurationMinutes int        `form:"durationMinutes" binding:"required,min=1"`
	StepMinutes     int        `form:"stepMinutes" binding:"omitempty,min=5"`
}

// ParseDate reads a YYYY-MM-DD business date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

package api

import (
	"net/http"

	reqdto "booking-marketplace/internal/handler/dto/request"
	resdto "booking-marketplace/internal/handler/dto/response"
	"booking-marketplace/internal/handler/httperr"
	"booking-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description Whether a slot can be reserved right now. Advisory only; the reservation itself is authoritative.
// @Tags availability
// @Produce json
// @Param shopId query string true "Shop ID"
// @Param resourceId query string false "Resource ID"
// @Param date query string true "Business date (YYYY-MM-DD)"
// @Param startTime query string true "Start time (HH:MM)"
// @Param durationMinutes query int true "Duration in minutes"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	date, err := reqdto.ParseDate(req.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	view, err := h.q.CheckAvailability(c.Request.Context(), queries.AvailabilityQuery{
		ShopID:          req.ShopID,
		ResourceID:      req.ResourceID,
		Date:            date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary List open slots
// @Description Start times on a date where a service of the given duration fits
// @Tags availability
// @Produce json
// @Param shopId query string true "Shop ID"
// @Param resourceId query string false "Resource ID"
// @Param date query string true "Business date (YYYY-MM-DD)"
// @Param durationMinutes query int true "Duration in minutes"
// @Param stepMinutes query int false "Grid step in minutes"
// @Success 200 {array} resdto.OpenSlotResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/slots [get]
func (h *AvailabilityHandler) OpenSlots(c *gin.Context) {
	var req reqdto.OpenSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	date, err := reqdto.ParseDate(req.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	slots, err := h.q.ListOpenSlots(c.Request.Context(), queries.OpenSlotsQuery{
		ShopID:          req.ShopID,
		ResourceID:      req.ResourceID,
		Date:            date,
		DurationMinutes: req.DurationMinutes,
		StepMinutes:     req.StepMinutes,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOpenSlots(slots))
}

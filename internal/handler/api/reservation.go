package api

import (
	"net/http"

	reqdto "booking-marketplace/internal/handler/dto/request"
	resdto "booking-marketplace/internal/handler/dto/response"
	"booking-marketplace/internal/handler/httperr"
	"booking-marketplace/internal/handler/middleware"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve a slot. Retries with the same Idempotency-Key replay the original result.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key (UUID)"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Success 200 {object} resdto.CreateReservationResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrForbidden, "Unauthorized", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Valid Idempotency-Key header required", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	in, err := req.ToInput(actor.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	result, err := h.cmds.Reserve(c.Request.Context(), in, idempotencyKey)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.CreateReservationResponse{
		Reservation: resdto.FromReservationView(result.Reservation),
		IsReplayed:  result.IsReplayed,
	})
}

// @Summary Get reservation
// @Description Reservation status with line items and payments
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Cancel by the customer or the shop. Paid money is refunded.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancel reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	view, err := retryOnStale(func() (*queries.ReservationView, error) {
		return h.cmds.Cancel(c.Request.Context(), id, actor, req.Reason)
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Complete reservation
// @Description Shop marks the service as delivered; points are credited
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	id, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := retryOnStale(func() (*queries.ReservationView, error) {
		return h.cmds.Complete(c.Request.Context(), id, actor)
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Record no-show
// @Description Shop records that the customer did not appear; the deposit is kept
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/no-show [post]
func (h *ReservationHandler) NoShow(c *gin.Context) {
	id, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := retryOnStale(func() (*queries.ReservationView, error) {
		return h.cmds.MarkNoShow(c.Request.Context(), id, actor)
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "invalid idempotency key format")
	}
	return key, nil
}

// parseIDAndActor aborts the request when the path id is malformed or no actor is authenticated.
func parseIDAndActor(c *gin.Context) (uuid.UUID, bool) {
	if _, ok := middleware.GetActor(c); !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrForbidden, "Unauthorized", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

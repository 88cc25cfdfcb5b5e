package api

import (
	"io"
	"net/http"

	reqdto "booking-marketplace/internal/handler/dto/request"
	resdto "booking-marketplace/internal/handler/dto/response"
	"booking-marketplace/internal/handler/httperr"
	"booking-marketplace/internal/handler/middleware"
	"booking-marketplace/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "X-Gateway-Signature"
	maxWebhookBytes = 64 << 10
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Prepare payment
// @Description Open a gateway checkout for the deposit or the final payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.PreparePaymentRequest true "Stage"
// @Success 201 {object} resdto.PaymentIntentResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id}/payments [post]
func (h *PaymentHandler) Prepare(c *gin.Context) {
	reservationID, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	var req reqdto.PreparePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	intent, err := h.cmds.Prepare(c.Request.Context(), reservationID, req.Stage, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPaymentIntent(intent))
}

// @Summary Confirm payment
// @Description Client-side confirmation after checkout; verified against the gateway record
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmPaymentRequest true "Gateway payment id"
// @Success 200 {object} resdto.ConfirmationResponse
// @Failure 402 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := retryOnStale(func() (*commands.ConfirmationResult, error) {
		return h.cmds.Confirm(c.Request.Context(), req.ExternalPaymentID)
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	if actor, ok := middleware.GetActor(c); ok && !actor.IsPrivileged() && actor.ID != result.CustomerID {
		// the confirmation is applied either way; only the details are withheld
		c.JSON(http.StatusOK, gin.H{"paymentStatus": result.PaymentStatus})
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmation(result))
}

// @Summary Payment webhook
// @Description Gateway callback, signed with HMAC-SHA256 of the raw body
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Gateway-Signature header string true "hex HMAC-SHA256"
// @Success 200 {object} resdto.ConfirmationResponse
// @Failure 401 {object} httperr.Response
// @Router /webhooks/payments [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	result, err := retryOnStale(func() (*commands.ConfirmationResult, error) {
		return h.cmds.HandleGatewayCallback(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmation(result))
}

// @Summary Cancel payment
// @Description Refund a paid payment (optionally partially) or void a prepared one
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.CancelPaymentRequest true "Cancel request"
// @Success 200 {object} resdto.CancellationResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/{id}/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	paymentID, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	var req reqdto.CancelPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := retryOnStale(func() (*commands.CancellationResult, error) {
		return h.cmds.Cancel(c.Request.Context(), paymentID, actor, req.Reason, req.Amount)
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellation(result))
}

package httperr

import (
	"net/http"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgSlotTaken     = "this time is no longer available, please choose another"
	msgNotVerified   = "payment could not be verified"
	msgInternalError = "Internal server error"
)

type mapping struct {
	targets []error
	status  int
	code    Code
	msg     string
}

func (m mapping) errorCode() Code {
	if m.code != "" {
		return m.code
	}
	return CodeFor(m.status)
}

// ordered: the first matching entry wins
var mappings = []mapping{
	{targets: []error{reservation.ErrSlotConflict}, status: http.StatusConflict, code: CodeSlotTaken, msg: msgSlotTaken},
	{targets: []error{errs.ErrConcurrentModification}, status: http.StatusConflict, msg: "The resource was modified concurrently, please retry"},
	{targets: []error{payment.ErrDuplicateStage}, status: http.StatusConflict, msg: "A payment for this stage already exists"},
	{targets: []error{errs.ErrIdempotencyInProgress}, status: http.StatusConflict, msg: "Request is currently being processed"},
	{targets: []error{errs.ErrIdempotencyKeyReused}, status: http.StatusUnprocessableEntity, msg: "Idempotency key was used with a different request"},

	{targets: []error{payment.ErrAmountMismatch, payment.ErrOrderRefMismatch}, status: http.StatusUnprocessableEntity, msg: msgNotVerified},
	{targets: []error{payment.ErrStatusMismatch, payment.ErrVerificationFailed}, status: http.StatusPaymentRequired, msg: msgNotVerified},
	{targets: []error{payment.ErrInvalidSignature}, status: http.StatusUnauthorized, msg: "Invalid signature"},
	{targets: []error{payment.ErrGatewayUnavailable}, status: http.StatusServiceUnavailable, msg: "Payment gateway is unavailable, please retry later"},

	{targets: []error{
		commands.ErrReservationForbidden, commands.ErrPaymentForbidden,
		queries.ErrReservationAccess, queries.ErrPointAccess, errs.ErrForbidden,
	}, status: http.StatusForbidden, msg: "Insufficient permissions"},
	{targets: []error{
		commands.ErrShopNotFound, commands.ErrResourceNotFound, commands.ErrServiceNotFound,
		commands.ErrReservationNotFound, commands.ErrPaymentNotFound,
		queries.ErrShopNotFound, queries.ErrResourceNotFound, queries.ErrReservationNotFound,
		errs.ErrNotFound,
	}, status: http.StatusNotFound, msg: "Not found"},

	{targets: []error{point.ErrInsufficientBalance}, status: http.StatusUnprocessableEntity, msg: "Insufficient point balance"},
	{targets: []error{
		reservation.ErrInvalidTransition, payment.ErrInvalidTransition, payment.ErrStageNotAllowed,
		payment.ErrNotCancellable, payment.ErrNothingToPay, reservation.ErrDepositNotPaid,
		reservation.ErrFinalPaymentRequired, reservation.ErrNoShowTooEarly,
	}, status: http.StatusConflict, msg: "Operation is not allowed in the current state"},
	{targets: []error{
		schedule.ErrShopClosed, schedule.ErrOutsideOperatingHours, schedule.ErrInBreakTime,
		schedule.ErrDurationOutOfRange, schedule.ErrResourceRequired, schedule.ErrInvalidClockTime,
		reservation.ErrInvalidTimeSlot, reservation.ErrSlotInPast, reservation.ErrInvalidQuantity,
		reservation.ErrEmptyLineItems, reservation.ErrPointsExceedSubtotal, reservation.ErrZeroTotal,
		reservation.ErrNegativeAmount, commands.ErrResourceInactive, commands.ErrNothingEarned,
		payment.ErrInvalidCancelAmount, payment.ErrInvalidStage, point.ErrInvalidAmount,
		point.ErrInvalidReason, commands.ErrInvalidWebhook, queries.ErrInvalidCursor, errs.ErrValidation,
	}, status: http.StatusUnprocessableEntity, msg: "Request could not be processed"},
}

// Status returns the HTTP status and public message for an error returned by a usecase.
func Status(err error) (int, string) {
	m, _, ok := match(err)
	if !ok {
		return http.StatusInternalServerError, msgInternalError
	}
	return m.status, m.msg
}

func match(err error) (mapping, error, bool) {
	for _, m := range mappings {
		for _, target := range m.targets {
			if errs.Is(err, target) {
				return m, target, true
			}
		}
	}
	return mapping{}, nil, false
}

// AbortWithUseCaseError maps err with Status. Conflicts expose the holder so clients can pick another slot,
// unprocessable requests expose the rule that rejected them.
func AbortWithUseCaseError(c *gin.Context, err error) {
	m, target, ok := match(err)
	if !ok {
		abort(c, err, Internal(c))
		return
	}

	var detail any
	var conflict *reservation.ConflictError
	switch {
	case errs.As(err, &conflict) && conflict.ConflictingReservationID != uuid.Nil:
		detail = gin.H{"conflictingReservationId": conflict.ConflictingReservationID}
	case m.status == http.StatusUnprocessableEntity:
		detail = gin.H{"reason": target.Error()}
	}
	abort(c, err, NewResponse(c, m.status, m.errorCode(), m.msg, detail))
}

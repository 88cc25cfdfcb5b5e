package httperr

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the logging middleware stores the request id under.
const RequestIDKey = "request_id"

// Code lets clients branch on the failure without parsing the message.
type Code string

const (
	CodeInvalidRequest     Code = "invalid_request"
	CodeUnauthenticated    Code = "unauthenticated"
	CodePaymentNotVerified Code = "payment_not_verified"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeSlotTaken          Code = "slot_taken"
	CodeRuleViolation      Code = "rule_violation"
	CodeGatewayUnavailable Code = "gateway_unavailable"
	CodeInternal           Code = "internal"
)

const gatewayRetryAfterSeconds = 30

var statusCodes = map[int]Code{
	http.StatusBadRequest:          CodeInvalidRequest,
	http.StatusUnauthorized:        CodeUnauthenticated,
	http.StatusPaymentRequired:     CodePaymentNotVerified,
	http.StatusForbidden:           CodeForbidden,
	http.StatusNotFound:            CodeNotFound,
	http.StatusConflict:            CodeConflict,
	http.StatusUnprocessableEntity: CodeRuleViolation,
	http.StatusServiceUnavailable:  CodeGatewayUnavailable,
}

// CodeFor returns the default code of an HTTP status.
func CodeFor(status int) Code {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return CodeInternal
}

type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Status    int    `json:"-"`
	Error     Body   `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func NewResponse(c *gin.Context, status int, code Code, msg string, detail any) Response {
	return Response{
		Status:    status,
		Error:     Body{Code: code, Message: msg},
		Detail:    detail,
		RequestID: c.GetString(RequestIDKey),
	}
}

// Internal is the body of every unexpected failure. The cause is only logged.
func Internal(c *gin.Context) Response {
	return NewResponse(c, http.StatusInternalServerError, CodeInternal, msgInternalError, nil)
}

// AbortWithError writes the response and records err on the context so the request log keeps the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, err, NewResponse(c, status, CodeFor(status), msg, detail))
}

func abort(c *gin.Context, err error, resp Response) {
	if err == nil {
		panic("httperr: abort without a cause")
	}
	if resp.Status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(gatewayRetryAfterSeconds))
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}

package api

import (
	"net/http"
	"time"

	reqdto "booking-marketplace/internal/handler/dto/request"
	resdto "booking-marketplace/internal/handler/dto/response"
	"booking-marketplace/internal/handler/httperr"
	"booking-marketplace/internal/handler/middleware"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PointHandler struct {
	cmds commands.PointCommands
	q    queries.PointQueries
}

func NewPointHandler(cmds commands.PointCommands, q queries.PointQueries) *PointHandler {
	return &PointHandler{cmds: cmds, q: q}
}

// @Summary Point balance
// @Description Derived balance; asOf evaluates availability at another instant
// @Tags points
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param asOf query string false "RFC3339 instant"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 403 {object} httperr.Response
// @Router /users/{id}/points/balance [get]
func (h *PointHandler) Balance(c *gin.Context) {
	userID, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid asOf, expected RFC3339", nil)
			return
		}
		asOf = &t
	}

	view, err := h.q.Balance(c.Request.Context(), userID, actor, asOf)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBalanceView(view))
}

// @Summary Point history
// @Description Ledger entries, newest first, keyset paginated
// @Tags points
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param after query string false "Cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PointHistoryResponse
// @Failure 403 {object} httperr.Response
// @Router /users/{id}/points/history [get]
func (h *PointHandler) History(c *gin.Context) {
	userID, ok := parseIDAndActor(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	var req reqdto.PointHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var cursor *queries.Cursor
	if req.After != "" {
		cursor = &queries.Cursor{After: req.After}
	}
	items, next, err := h.q.History(c.Request.Context(), userID, actor, cursor, req.Limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPointHistory(items, next))
}

// @Summary Credit bonus points
// @Description Referral collaborator entry point
// @Tags internal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BonusRequest true "Bonus"
// @Success 201 {object} resdto.PointEntryResponse
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /internal/points/bonus [post]
func (h *PointHandler) CreditBonus(c *gin.Context) {
	var req reqdto.BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entry, err := retryOnStale(func() (*commands.PointEntryResult, error) {
		return h.cmds.CreditBonus(c.Request.Context(), req.UserID, req.Amount, req.Reason)
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPointEntry(entry))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// SettlementHandler handles HTTP requests for settlement status changes and
// per-user settlement views.
type SettlementHandler struct {
	settlementService SettlementServiceInterface
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementService SettlementServiceInterface) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// UpdateSettlementStatusHandler updates one settlement's status
// @Summary Update a settlement's status
// @Description Marks a settlement pending or paid; the settlement must belong to the bill in the path
// @Tags settlements
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body types.SettlementStatusUpdate true "Settlement id and new status"
// @Success 200 {object} types.Settlement
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid status or bill mismatch"
// @Failure 404 {object} types.ErrorResponse "Settlement not found"
// @Router /bills/{id}/settlements [put]
func (h *SettlementHandler) UpdateSettlementStatusHandler(c *gin.Context) {
	billID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req types.SettlementStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.Error(apperrors.ValidationFailed("Invalid input", err.Error())); err != nil {
			logger.GetLogger().Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	settlement, err := h.settlementService.SetStatus(c.Request.Context(), billID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settlement)
}

// ListUserSettlementsHandler lists a user's settlements
// @Summary List a user's settlements
// @Description Returns every settlement the user owes or is owed, with bill context
// @Tags settlements
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} types.Settlement
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid id"
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /users/{id}/settlements [get]
func (h *SettlementHandler) ListUserSettlementsHandler(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	settlements, err := h.settlementService.ListUserSettlements(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settlements)
}

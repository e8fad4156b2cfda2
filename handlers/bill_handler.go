package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// BillHandler handles HTTP requests for bills.
type BillHandler struct {
	billService BillServiceInterface
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService BillServiceInterface) *BillHandler {
	return &BillHandler{billService: billService}
}

// ListBillsHandler lists all bills
// @Summary List bills
// @Description Returns all bills with nested payer, items, settlements, and computed totals
// @Tags bills
// @Produce json
// @Success 200 {array} types.BillSummary
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /bills [get]
func (h *BillHandler) ListBillsHandler(c *gin.Context) {
	bills, err := h.billService.ListBills(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// CreateBillHandler creates a new bill
// @Summary Create a bill
// @Description Creates a bill with its items; settlements are derived from the items
// @Tags bills
// @Accept json
// @Produce json
// @Param request body types.BillInput true "Bill details"
// @Success 201 {object} types.BillSummary
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /bills [post]
func (h *BillHandler) CreateBillHandler(c *gin.Context) {
	var req types.BillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.Error(apperrors.ValidationFailed("Invalid input", err.Error())); err != nil {
			logger.GetLogger().Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// GetBillHandler retrieves one bill
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} types.BillSummary
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid id"
// @Failure 404 {object} types.ErrorResponse "Bill not found"
// @Router /bills/{id} [get]
func (h *BillHandler) GetBillHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// UpdateBillHandler replaces a bill
// @Summary Update a bill
// @Description Replaces the bill's fields and items; settlements are re-derived and reset to pending
// @Tags bills
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body types.BillInput true "Bill details"
// @Success 200 {object} types.BillSummary
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} types.ErrorResponse "Bill not found"
// @Router /bills/{id} [put]
func (h *BillHandler) UpdateBillHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req types.BillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.Error(apperrors.ValidationFailed("Invalid input", err.Error())); err != nil {
			logger.GetLogger().Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteBillHandler removes a bill
// @Summary Delete a bill
// @Description Deletes the bill along with its items and settlements
// @Tags bills
// @Param id path int true "Bill ID"
// @Success 204 "No content"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid id"
// @Failure 404 {object} types.ErrorResponse "Bill not found"
// @Router /bills/{id} [delete]
func (h *BillHandler) DeleteBillHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

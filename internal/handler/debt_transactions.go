package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/apierror"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/middleware"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/service"
)

type DebtTransactionsHandler struct{ svc service.DebtTransactionService }

func NewDebtTransactionsHandler(svc service.DebtTransactionService) *DebtTransactionsHandler {
	return &DebtTransactionsHandler{svc: svc}
}

// Create godoc
// @Summary Record a debt transaction
// @Description A credit with line items posts atomically: the total is derived
// @Description from snapshotted prices and stock is decremented in the same
// @Description database transaction.
// @Tags debt-transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateDebtTransactionRequest true "Transaction data"
// @Success 201 {object} dto.DebtTransactionResponse
// @Failure 400 {object} apierror.ValidationError
// @Failure 409 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/debt-transactions [post]
func (h *DebtTransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateDebtTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var actingUserID uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		actingUserID, _ = uuid.Parse(claims.UserID)
	}

	resp, err := h.svc.Create(c.Request.Context(), actingUserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DebtTransactionsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list debt transactions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DebtTransactionsHandler) Search(c *gin.Context) {
	var filter dto.DebtTransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to search debt transactions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DebtTransactionsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DebtTransactionsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateDebtTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DebtTransactionsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

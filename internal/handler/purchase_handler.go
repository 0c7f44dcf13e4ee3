package handler

import (
	"net/http"

	"curtainledger/internal/service"
	"curtainledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	ledgerService service.LedgerService
}

func NewPurchaseHandler(ledgerService service.LedgerService) *PurchaseHandler {
	return &PurchaseHandler{ledgerService: ledgerService}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/api/purchases")
	{
		purchases.PUT("/:itemId", h.UpdatePurchase)
		purchases.DELETE("/:itemId", h.DeletePurchase)
	}
}

// UpdatePurchase overwrites a purchase item's fields
// @Summary      Update purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        itemId   path      string                 true  "Purchase item ID"
// @Param        payload  body      service.PurchaseInput  true  "Purchase item"
// @Success      200      {object}  response.Response{data=model.PurchaseItem}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/purchases/{itemId} [put]
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	var req service.PurchaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.ledgerService.UpdatePurchase(c.Request.Context(), c.Param("itemId"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeletePurchase removes a purchase item; deleting a missing item succeeds
// @Summary      Delete purchase
// @Tags         purchases
// @Produce      json
// @Param        itemId  path      string  true  "Purchase item ID"
// @Success      200     {object}  response.Response
// @Router       /api/purchases/{itemId} [delete]
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	if err := h.ledgerService.DeletePurchase(c.Request.Context(), c.Param("itemId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Purchase item deleted"}))
}

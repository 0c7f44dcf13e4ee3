package handler

import (
	"net/http"

	"curtainledger/internal/service"
	"curtainledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	ledgerService service.LedgerService
}

func NewCatalogHandler(ledgerService service.LedgerService) *CatalogHandler {
	return &CatalogHandler{ledgerService: ledgerService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/catalog", h.GetCatalog)
}

// GetCatalog returns the status, worker and vendor pick lists
// @Summary      Pick lists
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=catalog.Catalog}
// @Router       /api/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.ledgerService.Catalog()))
}

package handler

import (
	"net/http"

	"curtainledger/internal/repository"
	"curtainledger/internal/service"
	"curtainledger/pkg/pagination"
	"curtainledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	ledgerService service.LedgerService
	ordering      repository.Ordering
}

// NewOrderHandler serves order listings in defaultOrdering unless ?sort= overrides it.
func NewOrderHandler(ledgerService service.LedgerService, defaultOrdering repository.Ordering) *OrderHandler {
	return &OrderHandler{ledgerService: ledgerService, ordering: defaultOrdering}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/periods", h.GetPeriods)
		orders.GET("/options", h.GetOrderOptions)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.GET("/:id/purchases", h.ListPurchases)
		orders.POST("/:id/purchases", h.AddPurchase)
	}
}

// ParseOrdering maps the ORDER_SORT / ?sort= value.
func ParseOrdering(s string, fallback repository.Ordering) repository.Ordering {
	switch s {
	case "recent":
		return repository.OrderMostRecentFirst
	case "insertion":
		return repository.OrderInsertion
	}
	return fallback
}

// ListOrders returns one period's orders, optionally searched and paginated
// @Summary      List orders
// @Description  Orders of a (year, month) period, defaulting to the current month
// @Tags         orders
// @Produce      json
// @Param        year   query     int     false  "Year (requires month)"
// @Param        month  query     int     false  "Month (1-12)"
// @Param        q      query     string  false  "Search customer name, address or order id"
// @Param        sort   query     string  false  "insertion or recent"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	year, month, ok := queryPeriod(c)
	if !ok {
		return
	}
	filter := service.OrderFilter{
		Year:     year,
		Month:    month,
		Query:    c.Query("q"),
		Ordering: ParseOrdering(c.Query("sort"), h.ordering),
	}
	orders, err := h.ledgerService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	p := pagination.Parse(c)
	start, end := p.Window(len(orders))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"orders": orders[start:end],
		"total":  len(orders),
		"page":   p.Page,
		"limit":  p.Limit,
	}))
}

// GetPeriods lists every (year, month) that has orders, newest first
// @Summary      List periods
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Period}
// @Router       /api/orders/periods [get]
func (h *OrderHandler) GetPeriods(c *gin.Context) {
	periods, err := h.ledgerService.Periods(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, periods))
}

// GetOrderOptions returns "name | address" labels for one period's orders
// @Summary      Order selection options
// @Tags         orders
// @Produce      json
// @Param        year   query     int  false  "Year (requires month)"
// @Param        month  query     int  false  "Month (1-12)"
// @Success      200    {object}  response.Response{data=[]model.OrderOption}
// @Router       /api/orders/options [get]
func (h *OrderHandler) GetOrderOptions(c *gin.Context) {
	year, month, ok := queryPeriod(c)
	if !ok {
		return
	}
	opts, err := h.ledgerService.OrderOptions(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, opts))
}

// CreateOrder registers a new customer order
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body      service.OrderInput  true  "Order"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.ledgerService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// GetOrder returns an order with its purchase items and outstanding balance
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=service.OrderDetail}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	detail, err := h.ledgerService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// UpdateOrder overwrites an order's fields
// @Summary      Update order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Order ID"
// @Param        payload  body      service.OrderInput  true  "Order"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req service.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.ledgerService.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteOrder removes an order; deleting a missing order succeeds
// @Summary      Delete order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.ledgerService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Order deleted"}))
}

// ListPurchases returns the purchase items recorded against an order
// @Summary      List order purchases
// @Tags         purchases
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=[]model.PurchaseItem}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/purchases [get]
func (h *OrderHandler) ListPurchases(c *gin.Context) {
	items, err := h.ledgerService.ListPurchases(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// AddPurchase records a vendor purchase or wage payout against an order
// @Summary      Add purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Order ID"
// @Param        payload  body      service.PurchaseInput  true  "Purchase item"
// @Success      201      {object}  response.Response{data=model.PurchaseItem}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id}/purchases [post]
func (h *OrderHandler) AddPurchase(c *gin.Context) {
	var req service.PurchaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.ledgerService.AddPurchase(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

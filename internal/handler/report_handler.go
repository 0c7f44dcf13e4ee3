package handler

import (
	"net/http"

	"curtainledger/internal/middleware"
	"curtainledger/internal/service"
	"curtainledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	ledgerService service.LedgerService
	secret        []byte
}

func NewReportHandler(ledgerService service.LedgerService, secret []byte) *ReportHandler {
	return &ReportHandler{ledgerService: ledgerService, secret: secret}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports", middleware.RequireAuth(h.secret))
	{
		reports.GET("/monthly", h.GetMonthly)
		reports.GET("/trend", h.GetTrend)
		reports.GET("/orders/:id", h.GetOrderReport)
	}
}

// GetMonthly returns the profit summary, vendor spend, worker payouts and wages of a month
// @Summary      Monthly profit report
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        year   query     int  false  "Year (requires month)"
// @Param        month  query     int  false  "Month (1-12)"
// @Success      200    {object}  response.Response{data=model.MonthlyReport}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) GetMonthly(c *gin.Context) {
	year, month, ok := queryPeriod(c)
	if !ok {
		return
	}
	rep, err := h.ledgerService.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rep))
}

// GetTrend returns the twelve monthly totals of a year
// @Summary      Yearly trend
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        year  query     int  false  "Year"
// @Success      200   {object}  response.Response{data=[]model.PeriodTotals}
// @Failure      401   {object}  response.Response
// @Router       /api/reports/trend [get]
func (h *ReportHandler) GetTrend(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	trend, err := h.ledgerService.YearTrend(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, trend))
}

// GetOrderReport returns the profit breakdown of one order
// @Summary      Order profit report
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.OrderReport}
// @Failure      404  {object}  response.Response
// @Router       /api/reports/orders/{id} [get]
func (h *ReportHandler) GetOrderReport(c *gin.Context) {
	rep, err := h.ledgerService.OrderReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rep))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiolume/pos-backoffice/internal/api/metrics"
	"github.com/studiolume/pos-backoffice/internal/core/domain"
	"github.com/studiolume/pos-backoffice/internal/core/ports"
)

// SaleHandler handles HTTP requests for the sales ledger.
type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// Record handles POST /v1/sales.
//
// @Summary      Record a sale with its line items
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      recordSaleRequest  true   "Sale details"
// @Success      201              {object}  recordSaleResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /v1/sales [post]
func (h *SaleHandler) Record(c echo.Context) error {
	var req recordSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.RecordSale(c.Request().Context(), principal, toRecordSaleInput(req, idempotencyKey))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.SalesErrorsTotal.WithLabelValues("validation").Inc()
		} else {
			metrics.SalesErrorsTotal.WithLabelValues("persistence").Inc()
		}
		return err
	}

	if result.AlreadyExisted {
		metrics.SalesRecordedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, toRecordSaleResponse(result))
	}

	metrics.SalesRecordedTotal.WithLabelValues("recorded").Inc()
	metrics.SaleItemsPerSale.Observe(float64(len(req.Items)))
	return c.JSON(http.StatusCreated, toRecordSaleResponse(result))
}

// History handles GET /v1/sales/history.
//
// @Summary      List past sales with line items, newest first
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   saleViewResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/sales/history [get]
func (h *SaleHandler) History(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListHistory(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(views))
}

// Summary handles GET /v1/sales/summary.
//
// @Summary      Revenue totals for today and the current calendar month
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revenueSummaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/sales/summary [get]
func (h *SaleHandler) Summary(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summarize(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	metrics.SummaryRequestsTotal.WithLabelValues(principal.Role).Inc()
	return c.JSON(http.StatusOK, revenueSummaryResponse{
		RevenueToday: summary.RevenueToday,
		RevenueMonth: summary.RevenueMonth,
	})
}

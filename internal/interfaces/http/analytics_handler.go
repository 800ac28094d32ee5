package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints de analítica: KPIs, series,
// pronóstico y anomalías (solo manager).
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetKPIs godoc
// @Summary      KPIs del tablero
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardKPIsDTO
// @Router       /api/analytics/kpis [get]
func (h *AnalyticsHandler) GetKPIs(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboardKPIs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetHistorical godoc
// @Summary      Serie histórica de stock de un producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SeriesPointDTO
// @Router       /api/analytics/historical/{productId} [get]
func (h *AnalyticsHandler) GetHistorical(c *fiber.Ctx) error {
	out, err := h.uc.GetHistoricalSeries(c.Context(), c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetScheduled godoc
// @Summary      Serie de movimientos programados de un producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SeriesPointDTO
// @Router       /api/analytics/scheduled/{productId} [get]
func (h *AnalyticsHandler) GetScheduled(c *fiber.Ctx) error {
	out, err := h.uc.GetScheduledSeries(c.Context(), c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetForecast godoc
// @Summary      Pronóstico de demanda de un producto
// @Description  Proyección de 30 días a partir de las salidas históricas.
//               Con historial insuficiente devuelve una serie vacía.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SeriesPointDTO
// @Router       /api/analytics/forecast/{productId} [get]
func (h *AnalyticsHandler) GetForecast(c *fiber.Ctx) error {
	out, err := h.uc.GetForecast(c.Context(), c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetAnomalies godoc
// @Summary      Movimientos anómalos de todo el inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AnomalyDTO
// @Router       /api/analytics/anomalies [get]
func (h *AnalyticsHandler) GetAnomalies(c *fiber.Ctx) error {
	out, err := h.uc.GetAnomalies(c.Context(), "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetProductAnomalies godoc
// @Summary      Movimientos anómalos de un producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.AnomalyDTO
// @Router       /api/analytics/anomalies/{productId} [get]
func (h *AnalyticsHandler) GetProductAnomalies(c *fiber.Ctx) error {
	out, err := h.uc.GetAnomalies(c.Context(), c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

package analytics

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/timeseries"
)

// AnalyticsUseCase consultas de analítica sobre el libro de movimientos:
// series, KPIs, pronóstico de demanda y detección de anomalías. Todas las
// operaciones son de solo lectura: trabajan sobre un snapshot del historial,
// no toman bloqueos y nunca interfieren con el procesador de movimientos.
// Los modelos se inyectan para poder sustituir la implementación numérica
// sin tocar los contratos del libro.
type AnalyticsUseCase struct {
	repo       repository.AnalyticsRepository
	forecaster timeseries.Forecaster
	detector   timeseries.OutlierDetector
}

// NewAnalyticsUseCase construye el caso de uso con los modelos dados.
func NewAnalyticsUseCase(
	repo repository.AnalyticsRepository,
	forecaster timeseries.Forecaster,
	detector timeseries.OutlierDetector,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo, forecaster: forecaster, detector: detector}
}

// GetHistoricalSeries devuelve la serie de balance de los movimientos
// COMPLETED de un producto, ascendente por fecha.
func (uc *AnalyticsUseCase) GetHistoricalSeries(ctx context.Context, productID string) ([]dto.SeriesPointDTO, error) {
	points, err := uc.repo.GetHistoricalSeries(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toSeriesDTO(points), nil
}

// GetScheduledSeries devuelve la serie de movimientos SCHEDULED de un
// producto, ascendente por fecha.
func (uc *AnalyticsUseCase) GetScheduledSeries(ctx context.Context, productID string) ([]dto.SeriesPointDTO, error) {
	points, err := uc.repo.GetScheduledSeries(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toSeriesDTO(points), nil
}

// GetDashboardKPIs devuelve los contadores del tablero.
func (uc *AnalyticsUseCase) GetDashboardKPIs(ctx context.Context) (dto.DashboardKPIsDTO, error) {
	kpis, err := uc.repo.GetDashboardKPIs(ctx)
	if err != nil {
		return dto.DashboardKPIsDTO{}, err
	}
	return dto.DashboardKPIsDTO{
		TotalProducts: kpis.TotalProducts,
		LowStockItems: kpis.LowStockItems,
	}, nil
}

func toSeriesDTO(points []repository.SeriesPoint) []dto.SeriesPointDTO {
	out := make([]dto.SeriesPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.SeriesPointDTO{Timestamp: p.Timestamp, Quantity: p.Quantity})
	}
	return out
}

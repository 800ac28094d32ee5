package analytics

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/pkg/timeseries"
)

// Horizonte del pronóstico: períodos diarios después de la última observación.
const forecastHorizonDays = 30

// GetForecast proyecta la demanda futura de un producto a partir de sus
// salidas históricas (change_quantity < 0, magnitud en valor absoluto).
// Con menos de dos observaciones devuelve una serie vacía: no se puede
// ajustar una tendencia con un solo punto. Cualquier error de ajuste del
// modelo degrada también a serie vacía — el pronóstico es informativo, no
// autoritativo, y nunca propaga fallos numéricos al caller.
func (uc *AnalyticsUseCase) GetForecast(ctx context.Context, productID string) ([]dto.SeriesPointDTO, error) {
	movements, err := uc.repo.GetOutgoingMovements(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(movements) < 2 {
		return []dto.SeriesPointDTO{}, nil
	}

	points := make([]timeseries.Point, 0, len(movements))
	for _, m := range movements {
		points = append(points, timeseries.Point{
			Time:  m.CreatedAt,
			Value: math.Abs(float64(m.ChangeQuantity)),
		})
	}

	raw, err := uc.forecaster.Forecast(points, forecastHorizonDays)
	if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("ajuste del pronóstico falló; se devuelve serie vacía")
		return []dto.SeriesPointDTO{}, nil
	}

	// La demanda no puede ser negativa: se descartan predicciones < 0 y se
	// redondea al entero más cercano.
	out := make([]dto.SeriesPointDTO, 0, len(raw))
	for _, p := range raw {
		if p.Value < 0 {
			continue
		}
		out = append(out, dto.SeriesPointDTO{
			Timestamp: p.Time,
			Quantity:  int(math.Round(p.Value)),
		})
	}
	return out, nil
}

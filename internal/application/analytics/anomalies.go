package analytics

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Mínimo de movimientos para estimar densidad; por debajo no hay señal
// estadística y se devuelve vacío en lugar de error.
const minAnomalySamples = 10

// Formato de fecha de los reportes de anomalías.
const anomalyDateLayout = "2006-01-02 15:04"

// GetAnomalies detecta movimientos estadísticamente inusuales. Con productID
// vacío analiza el historial global de todos los productos; si no, solo el
// del producto indicado. Las características por movimiento son
// {change_quantity, hora del día, día de la semana}. El resultado conserva
// el orden de entrada (fecha descendente) y viene enriquecido con el nombre
// del producto.
func (uc *AnalyticsUseCase) GetAnomalies(ctx context.Context, productID string) ([]dto.AnomalyDTO, error) {
	var rows []repository.MovementWithProduct
	var err error
	if productID == "" {
		rows, err = uc.repo.ListMovementsWithProduct(ctx)
	} else {
		rows, err = uc.repo.ListProductMovementsWithName(ctx, productID)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < minAnomalySamples {
		return []dto.AnomalyDTO{}, nil
	}

	samples := make([][]float64, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, []float64{
			float64(r.Movement.ChangeQuantity),
			float64(r.Movement.CreatedAt.Hour()),
			float64(r.Movement.CreatedAt.Weekday()),
		})
	}

	flagged := uc.detector.Detect(samples)

	out := make([]dto.AnomalyDTO, 0, len(flagged))
	for _, i := range flagged {
		r := rows[i]
		out = append(out, dto.AnomalyDTO{
			ID:             r.Movement.ID,
			ProductID:      r.Movement.ProductID,
			ProductName:    r.ProductName,
			ChangeQuantity: r.Movement.ChangeQuantity,
			Reason:         r.Movement.Reason,
			EventDate:      r.Movement.CreatedAt.Format(anomalyDateLayout),
		})
	}
	return out, nil
}

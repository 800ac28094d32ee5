package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// SeriesPoint un punto (timestamp, cantidad) de una serie de stock.
type SeriesPoint struct {
	Timestamp time.Time
	Quantity  int
}

// MovementWithProduct movimiento enriquecido con el nombre del producto
// (JOIN contra products). Lo produce la DB; el use case lo convierte en DTO.
type MovementWithProduct struct {
	Movement    entity.Movement
	ProductName string
}

// DashboardKPIs contadores del tablero. LowStockItems cuenta productos con
// quantity_on_hand < reorder_point. Ambos excluyen borrados lógicos.
type DashboardKPIs struct {
	TotalProducts int
	LowStockItems int
}

// AnalyticsRepository define las consultas de lectura para analítica del
// inventario. Las implementaciones son read-only: no toman bloqueos ni
// modifican datos, y pueden observar datos levemente desactualizados respecto
// a movimientos en curso (sus salidas son solo informativas).
type AnalyticsRepository interface {
	// GetHistoricalSeries devuelve los movimientos COMPLETED de un producto
	// ascendentes por fecha, como puntos (created_at, new_quantity_on_hand).
	GetHistoricalSeries(ctx context.Context, productID string) ([]SeriesPoint, error)

	// GetScheduledSeries devuelve los movimientos SCHEDULED ascendentes.
	GetScheduledSeries(ctx context.Context, productID string) ([]SeriesPoint, error)

	// GetOutgoingMovements devuelve las salidas (change_quantity < 0) de un
	// producto ascendentes por fecha (entrada del motor de pronóstico).
	GetOutgoingMovements(ctx context.Context, productID string) ([]*entity.Movement, error)

	// ListMovementsWithProduct devuelve todos los movimientos del sistema con
	// el nombre de su producto, descendentes por fecha (vista de anomalías).
	ListMovementsWithProduct(ctx context.Context) ([]MovementWithProduct, error)

	// ListProductMovementsWithName devuelve los movimientos de un producto con
	// su nombre, descendentes por fecha.
	ListProductMovementsWithName(ctx context.Context, productID string) ([]MovementWithProduct, error)

	// GetDashboardKPIs devuelve los contadores del tablero.
	GetDashboardKPIs(ctx context.Context) (DashboardKPIs, error)
}

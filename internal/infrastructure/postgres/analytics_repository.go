package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el libro de movimientos.
// No toma bloqueos: lee un snapshot y puede ver datos levemente atrasados
// respecto a movimientos en vuelo, aceptable para salidas informativas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetHistoricalSeries serie (created_at, new_quantity_on_hand) de los
// movimientos COMPLETED de un producto, ascendente.
func (r *AnalyticsRepo) GetHistoricalSeries(ctx context.Context, productID string) ([]repository.SeriesPoint, error) {
	return r.series(ctx, productID, entity.MovementStatusCompleted)
}

// GetScheduledSeries serie de los movimientos SCHEDULED, ascendente.
func (r *AnalyticsRepo) GetScheduledSeries(ctx context.Context, productID string) ([]repository.SeriesPoint, error) {
	return r.series(ctx, productID, entity.MovementStatusScheduled)
}

func (r *AnalyticsRepo) series(ctx context.Context, productID, status string) ([]repository.SeriesPoint, error) {
	const query = `
		SELECT created_at, new_quantity_on_hand
		FROM inventory_movements
		WHERE product_id = $1 AND status = $2
		ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, productID, status)
	if err != nil {
		return nil, fmt.Errorf("analytics.series: %w", err)
	}
	defer rows.Close()
	var points []repository.SeriesPoint
	for rows.Next() {
		var p repository.SeriesPoint
		if err := rows.Scan(&p.Timestamp, &p.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.series scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetOutgoingMovements salidas (change_quantity < 0) de un producto,
// ascendentes por fecha. Entrada del motor de pronóstico.
func (r *AnalyticsRepo) GetOutgoingMovements(ctx context.Context, productID string) ([]*entity.Movement, error) {
	const query = `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE product_id = $1 AND change_quantity < 0
		ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOutgoingMovements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("analytics.GetOutgoingMovements scan: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListMovementsWithProduct todos los movimientos del sistema con el nombre de
// su producto, descendentes por fecha. Alcance global de la detección de
// anomalías.
func (r *AnalyticsRepo) ListMovementsWithProduct(ctx context.Context) ([]repository.MovementWithProduct, error) {
	const query = `
		SELECT m.id, m.product_id, m.user_id, m.change_quantity, m.new_quantity_on_hand, m.reason, m.status, m.created_at, p.name
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC`
	return r.listWithProduct(ctx, query)
}

// ListProductMovementsWithName movimientos de un producto con su nombre,
// descendentes por fecha.
func (r *AnalyticsRepo) ListProductMovementsWithName(ctx context.Context, productID string) ([]repository.MovementWithProduct, error) {
	const query = `
		SELECT m.id, m.product_id, m.user_id, m.change_quantity, m.new_quantity_on_hand, m.reason, m.status, m.created_at, p.name
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.product_id = $1
		ORDER BY m.created_at DESC`
	return r.listWithProduct(ctx, query, productID)
}

func (r *AnalyticsRepo) listWithProduct(ctx context.Context, query string, args ...any) ([]repository.MovementWithProduct, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.listWithProduct: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementWithProduct
	for rows.Next() {
		var row repository.MovementWithProduct
		var reason *string
		if err := rows.Scan(
			&row.Movement.ID, &row.Movement.ProductID, &row.Movement.UserID,
			&row.Movement.ChangeQuantity, &row.Movement.NewQuantityOnHand,
			&reason, &row.Movement.Status, &row.Movement.CreatedAt, &row.ProductName,
		); err != nil {
			return nil, fmt.Errorf("analytics.listWithProduct scan: %w", err)
		}
		if reason != nil {
			row.Movement.Reason = *reason
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetDashboardKPIs contadores del tablero. Aplica el filtro uniforme de
// visibilidad: los productos con borrado lógico no cuentan.
func (r *AnalyticsRepo) GetDashboardKPIs(ctx context.Context) (repository.DashboardKPIs, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE quantity_on_hand < reorder_point)
		FROM products
		WHERE is_deleted = FALSE`
	var kpis repository.DashboardKPIs
	if err := r.pool.QueryRow(ctx, query).Scan(&kpis.TotalProducts, &kpis.LowStockItems); err != nil {
		return repository.DashboardKPIs{}, fmt.Errorf("analytics.GetDashboardKPIs: %w", err)
	}
	return kpis, nil
}

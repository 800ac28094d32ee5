package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, user_id, change_quantity, new_quantity_on_hand, reason, status, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, user_id, change_quantity, new_quantity_on_hand, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	reason := (*string)(nil)
	if movement.Reason != "" {
		reason = &movement.Reason
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.ChangeQuantity,
		movement.NewQuantityOnHand, reason, movement.Status, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.Movement
	if err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProduct lista los movimientos de un producto, descendentes por fecha.
func (r *MovementRepo) ListByProduct(productID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1 ORDER BY created_at DESC`
	return r.list(query, productID)
}

// ListByProductAndStatus lista movimientos filtrados por estado, ascendentes.
func (r *MovementRepo) ListByProductAndStatus(productID, status string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1 AND status = $2 ORDER BY created_at ASC`
	return r.list(query, productID, status)
}

// ListOutgoingByProduct lista las salidas de un producto, ascendentes.
func (r *MovementRepo) ListOutgoingByProduct(productID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1 AND change_quantity < 0 ORDER BY created_at ASC`
	return r.list(query, productID)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row, m *entity.Movement) error {
	var reason *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.UserID, &m.ChangeQuantity,
		&m.NewQuantityOnHand, &reason, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return err
	}
	if reason != nil {
		m.Reason = *reason
	}
	return nil
}

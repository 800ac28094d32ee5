package repository

import "github.com/jhoicas/inventory-ledger/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. El libro es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProduct devuelve los movimientos de un producto ordenados por
	// fecha de creación descendente (vista de anomalías).
	ListByProduct(productID string) ([]*entity.Movement, error)
	// ListByProductAndStatus devuelve movimientos filtrados por estado,
	// ascendentes por fecha de creación (series históricas y programadas).
	ListByProductAndStatus(productID, status string) ([]*entity.Movement, error)
	// ListOutgoingByProduct devuelve las salidas (change_quantity < 0)
	// ascendentes por fecha de creación (entrada del motor de pronóstico).
	ListOutgoingByProduct(productID string) ([]*entity.Movement, error)
}

package repository

import "github.com/jhoicas/inventory-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas excluyen productos con borrado lógico (is_deleted).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// El chequeo de existencia/borrado lógico se evalúa bajo el bloqueo.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateQuantity escribe el nuevo balance. Solo el procesador de
	// movimientos debe invocarlo, dentro de la transacción que creó el movimiento.
	UpdateQuantity(id string, quantityOnHand int) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// SoftDelete marca el producto como borrado sin eliminar la fila.
	SoftDelete(id string) error
}

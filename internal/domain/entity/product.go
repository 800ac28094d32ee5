package entity

import "time"

// Product representa un producto o SKU del inventario.
// QuantityOnHand es la suma de los ChangeQuantity de todos los movimientos
// COMPLETED del producto; solo el procesador de movimientos puede modificarla.
// IsDeleted marca borrado lógico: el producto deja de listarse pero se conserva
// para la integridad referencial del historial de movimientos.
type Product struct {
	ID             string
	SKU            string // código único
	Name           string
	Description    string
	ReorderPoint   int // umbral de stock bajo
	QuantityOnHand int // aritmética entera con signo
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLowStock indica si el producto está por debajo de su punto de reorden.
func (p *Product) IsLowStock() bool {
	return p.QuantityOnHand < p.ReorderPoint
}

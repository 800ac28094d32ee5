package entity

import "time"

// Estados de un movimiento de inventario.
const (
	MovementStatusCompleted = "COMPLETED" // aplicado al balance
	MovementStatusScheduled = "SCHEDULED" // programado, no afecta el balance
)

// Movement representa una entrada del libro de inventario: un cambio con signo
// sobre el stock de un producto. Es inmutable una vez creado (append-only);
// NewQuantityOnHand es el snapshot del balance justo después de aplicar
// ChangeQuantity, capturado dentro de la misma transacción.
type Movement struct {
	ID                string
	ProductID         string
	UserID            string
	ChangeQuantity    int    // positivo entrada, negativo salida
	NewQuantityOnHand int    // balance resultante al momento del commit
	Reason            string // texto libre opcional
	Status            string // COMPLETED | SCHEDULED
	CreatedAt         time.Time
}

// IsOutgoing indica si el movimiento es una salida (venta, merma, etc.).
func (m *Movement) IsOutgoing() bool {
	return m.ChangeQuantity < 0
}

package entity

import "time"

// Roles válidos para User. El primer usuario registrado se convierte en
// manager; los siguientes en operator.
const (
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// User representa un usuario del sistema (inicia movimientos de inventario).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // manager, operator
	CreatedAt    time.Time
}

package repository

import "github.com/jhoicas/inventory-ledger/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	// CreateWithBootstrapRole persiste el usuario asignando el rol de forma
	// atómica: manager si es la primera identidad del sistema, operator en
	// caso contrario. El conteo y la inserción ocurren bajo el mismo bloqueo
	// para que dos primeros registros concurrentes no puedan ambos (o ninguno)
	// quedar como manager. Devuelve el rol asignado.
	CreateWithBootstrapRole(user *entity.User) (string, error)
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}

package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ApplyMovementUseCase registra movimientos de inventario de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es el único escritor del balance de un producto: dos llamadas concurrentes
// sobre el mismo producto se serializan; productos distintos no se bloquean
// entre sí (el bloqueo es por fila, nunca global).
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento de inventario.
type MovementInput struct {
	ProductID      string
	UserID         string
	ChangeQuantity int    // con signo: positivo entrada, negativo salida
	Reason         string // texto libre opcional
}

// ApplyMovement inicia una transacción, bloquea la fila del producto,
// recalcula el balance y persiste el movimiento COMPLETED con el snapshot
// resultante, todo como una unidad atómica.
//
// El chequeo de existencia/borrado lógico se evalúa dentro del bloqueo (no
// antes) para no correr contra un borrado concurrente. Si el producto no
// existe o está borrado devuelve domain.ErrNotFound sin escribir nada.
//
// No hay piso contra balances negativos: el stock negativo se conserva como
// estado válido del dominio (backorders).
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Product, error) {
	if input.ProductID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto; a partir de aquí ningún otro
		// movimiento del mismo producto puede leer el balance hasta el commit.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		product.QuantityOnHand += input.ChangeQuantity
		product.UpdatedAt = now
		if err := productRepo.UpdateQuantity(product.ID, product.QuantityOnHand); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:                uuid.New().String(),
			ProductID:         product.ID,
			UserID:            input.UserID,
			ChangeQuantity:    input.ChangeQuantity,
			NewQuantityOnHand: product.QuantityOnHand,
			Reason:            input.Reason,
			Status:            entity.MovementStatusCompleted,
			CreatedAt:         now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

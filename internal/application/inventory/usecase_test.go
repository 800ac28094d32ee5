package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore emula el colaborador de almacenamiento: bloqueo exclusivo por
// producto mediante una arena de mutexes creados de forma perezosa y nunca
// eliminados, con el commit guardado por la misma llave. Las escrituras se
// acumulan en la transacción y se aplican solo en el commit.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex // protege mapas y arena de locks
	locks     map[string]*sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		locks:    make(map[string]*sync.Mutex),
		products: make(map[string]*entity.Product),
	}
}

func (s *memStore) addProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *memStore) productLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locks[id]; !ok {
		s.locks[id] = &sync.Mutex{}
	}
	return s.locks[id]
}

func (s *memStore) movementCount(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n
}

// memTx transacción en memoria: escrituras pendientes + locks retenidos.
type memTx struct {
	store       *memStore
	held        []*sync.Mutex
	pendingQty  map[string]int
	pendingMovs []*entity.Movement
}

func (tx *memTx) commit() {
	tx.store.mu.Lock()
	for id, qty := range tx.pendingQty {
		tx.store.products[id].QuantityOnHand = qty
	}
	tx.store.movements = append(tx.store.movements, tx.pendingMovs...)
	tx.store.mu.Unlock()
	tx.release()
}

func (tx *memTx) release() {
	for _, l := range tx.held {
		l.Unlock()
	}
	tx.held = nil
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx := &memTx{store: r.store, pendingQty: make(map[string]int)}
	if err := fn(&memProductRepo{tx: tx}, &memMovementRepo{tx: tx}); err != nil {
		tx.release() // rollback: se descartan las escrituras pendientes
		return err
	}
	tx.commit()
	return nil
}

type memProductRepo struct{ tx *memTx }

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	l := r.tx.store.productLock(id)
	l.Lock()
	r.tx.held = append(r.tx.held, l)

	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	p, ok := r.tx.store.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) UpdateQuantity(id string, qty int) error {
	r.tx.pendingQty[id] = qty
	return nil
}

func (r *memProductRepo) Create(*entity.Product) error               { return nil }
func (r *memProductRepo) GetByID(string) (*entity.Product, error)    { return nil, nil }
func (r *memProductRepo) GetBySKU(string) (*entity.Product, error)   { return nil, nil }
func (r *memProductRepo) Update(*entity.Product) error               { return nil }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error)   { return nil, nil }
func (r *memProductRepo) SoftDelete(string) error                    { return nil }

type memMovementRepo struct{ tx *memTx }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.tx.pendingMovs = append(r.tx.pendingMovs, m)
	return nil
}

func (r *memMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *memMovementRepo) ListByProduct(string) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByProductAndStatus(string, string) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListOutgoingByProduct(string) ([]*entity.Movement, error) {
	return nil, nil
}

func newProduct(id string, qty, reorder int) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		ReorderPoint: reorder, QuantityOnHand: qty,
		CreatedAt: now, UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Movimiento simple: balance actualizado y entrada COMPLETED con el snapshot.
func TestApplyMovement_RegistraMovimientoYActualizaBalance(t *testing.T) {
	store := newMemStore()
	store.addProduct(newProduct("p1", 100, 10))
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	product, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", UserID: "u1", ChangeQuantity: -5, Reason: "sale",
	})
	require.NoError(t, err)
	assert.Equal(t, 95, product.QuantityOnHand)
	assert.False(t, product.IsLowStock(), "95 >= reorder point de 10")

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, -5, mov.ChangeQuantity)
	assert.Equal(t, 95, mov.NewQuantityOnHand)
	assert.Equal(t, entity.MovementStatusCompleted, mov.Status)
	assert.Equal(t, "sale", mov.Reason)
	assert.Equal(t, "u1", mov.UserID)
}

// Escenario del tablero: tras una salida grande el producto entra en stock bajo.
func TestApplyMovement_EntraEnStockBajo(t *testing.T) {
	store := newMemStore()
	store.addProduct(newProduct("p1", 100, 10))
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", UserID: "u1", ChangeQuantity: -5, Reason: "sale",
	})
	require.NoError(t, err)

	product, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", UserID: "u1", ChangeQuantity: -90,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, product.QuantityOnHand)
	assert.True(t, product.IsLowStock(), "5 < reorder point de 10")
}

// Sin piso: el balance puede quedar negativo (backorder).
func TestApplyMovement_PermiteBalanceNegativo(t *testing.T) {
	store := newMemStore()
	store.addProduct(newProduct("p1", 3, 0))
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	product, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", UserID: "u1", ChangeQuantity: -10,
	})
	require.NoError(t, err)
	assert.Equal(t, -7, product.QuantityOnHand)
}

// Producto inexistente: NotFound y cero escrituras.
func TestApplyMovement_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "no-existe", UserID: "u1", ChangeQuantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

// Producto con borrado lógico: mismo contrato que inexistente.
func TestApplyMovement_ProductoBorrado(t *testing.T) {
	store := newMemStore()
	p := newProduct("p1", 50, 10)
	p.IsDeleted = true
	store.addProduct(p)
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", UserID: "u1", ChangeQuantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
	assert.Equal(t, 50, store.products["p1"].QuantityOnHand)
}

// Entrada inválida: sin producto o sin usuario no se abre transacción.
func TestApplyMovement_EntradaInvalida(t *testing.T) {
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: newMemStore()})

	_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ApplyMovement(context.Background(), inventory.MovementInput{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// N escritores concurrentes de +1 sobre el mismo producto: sin updates
// perdidos, balance final N y exactamente N entradas en el libro.
func TestApplyMovement_ConcurrenciaSinUpdatesPerdidos(t *testing.T) {
	const n = 50

	store := newMemStore()
	store.addProduct(newProduct("p1", 0, 0))
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
				ProductID: "p1", UserID: "u1", ChangeQuantity: 1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, store.products["p1"].QuantityOnHand)
	assert.Equal(t, n, store.movementCount("p1"))

	// Cada snapshot 1..N aparece exactamente una vez: los movimientos se
	// serializaron sin pisarse.
	seen := make(map[int]bool)
	for _, m := range store.movements {
		assert.False(t, seen[m.NewQuantityOnHand], "snapshot repetido: update perdido")
		seen[m.NewQuantityOnHand] = true
	}
}

// Movimientos sobre productos distintos no se bloquean entre sí: el balance
// de cada producto solo refleja sus propios movimientos.
func TestApplyMovement_ProductosIndependientes(t *testing.T) {
	const n = 20

	store := newMemStore()
	store.addProduct(newProduct("p1", 0, 0))
	store.addProduct(newProduct("p2", 0, 0))
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
				ProductID: "p1", UserID: "u1", ChangeQuantity: 1,
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
				ProductID: "p2", UserID: "u1", ChangeQuantity: 2,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, store.products["p1"].QuantityOnHand)
	assert.Equal(t, 2*n, store.products["p2"].QuantityOnHand)
	assert.Equal(t, n, store.movementCount("p1"))
	assert.Equal(t, n, store.movementCount("p2"))
}

// Invariante del libro: el balance es la suma de los ChangeQuantity de los
// movimientos COMPLETED del producto.
func TestApplyMovement_InvarianteDelLibro(t *testing.T) {
	store := newMemStore()
	store.addProduct(newProduct("p1", 0, 0))
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{store: store})

	changes := []int{10, -3, 25, -7, -5, 100, -40}
	for _, c := range changes {
		_, err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
			ProductID: "p1", UserID: "u1", ChangeQuantity: c,
		})
		require.NoError(t, err)
	}

	sum := 0
	for _, m := range store.movements {
		if m.Status == entity.MovementStatusCompleted {
			sum += m.ChangeQuantity
		}
	}
	assert.Equal(t, sum, store.products["p1"].QuantityOnHand)
}

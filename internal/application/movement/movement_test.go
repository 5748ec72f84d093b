package movement_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountygroup/drinks-inventory-api/internal/application/audit"
	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/application/movement"
	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/role"
	"github.com/bountygroup/drinks-inventory-api/pkg/config"
	"github.com/bountygroup/drinks-inventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: almacén en memoria + TxRunner con snapshot/rollback
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda el estado compartido que las "transacciones" mutan. El
// fakeTxRunner toma un snapshot antes de ejecutar el callback y lo restaura si
// este devuelve error, imitando el Rollback real.
type memStore struct {
	mu        sync.Mutex
	items     map[string]*entity.StockItem // por ID
	checkouts map[string]*entity.CheckoutBatch
	transfers map[string]*entity.TransferBatch
	nextID    int
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[string]*entity.StockItem),
		checkouts: make(map[string]*entity.CheckoutBatch),
		transfers: make(map[string]*entity.TransferBatch),
	}
}

func (s *memStore) snapshot() (map[string]*entity.StockItem, map[string]*entity.CheckoutBatch, map[string]*entity.TransferBatch) {
	items := make(map[string]*entity.StockItem, len(s.items))
	for k, v := range s.items {
		cp := *v
		items[k] = &cp
	}
	checkouts := make(map[string]*entity.CheckoutBatch, len(s.checkouts))
	for k, v := range s.checkouts {
		cp := *v
		checkouts[k] = &cp
	}
	transfers := make(map[string]*entity.TransferBatch, len(s.transfers))
	for k, v := range s.transfers {
		cp := *v
		transfers[k] = &cp
	}
	return items, checkouts, transfers
}

type memItemRepo struct{ s *memStore }

var _ repository.StockItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) GetByID(id string) (*entity.StockItem, error) {
	if it, ok := r.s.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *memItemRepo) GetByCode(code, warehouse string) (*entity.StockItem, error) {
	for _, it := range r.s.items {
		if it.Code == code && it.Warehouse == warehouse {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetByCodeForUpdate(code, warehouse string) (*entity.StockItem, error) {
	return r.GetByCode(code, warehouse)
}

func (r *memItemRepo) Create(item *entity.StockItem) error {
	if item.ID == "" {
		r.s.nextID++
		item.ID = string(rune('a' + r.s.nextID))
	}
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) Update(item *entity.StockItem) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) Delete(id string) error {
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *memItemRepo) List(filter repository.ItemFilter) ([]*entity.StockItem, int, error) {
	var out []*entity.StockItem
	for _, it := range r.s.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type memCheckoutRepo struct{ s *memStore }

var _ repository.CheckoutBatchRepository = (*memCheckoutRepo)(nil)

func (r *memCheckoutRepo) Create(batch *entity.CheckoutBatch) error {
	cp := *batch
	r.s.checkouts[batch.ID] = &cp
	return nil
}

func (r *memCheckoutRepo) GetByID(id string) (*entity.CheckoutBatch, error) {
	if b, ok := r.s.checkouts[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *memCheckoutRepo) Delete(id string) error {
	if _, ok := r.s.checkouts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.checkouts, id)
	return nil
}

func (r *memCheckoutRepo) List(filter repository.BatchFilter) ([]*entity.CheckoutBatch, int, error) {
	var out []*entity.CheckoutBatch
	for _, b := range r.s.checkouts {
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type memTransferRepo struct{ s *memStore }

var _ repository.TransferBatchRepository = (*memTransferRepo)(nil)

func (r *memTransferRepo) Create(batch *entity.TransferBatch) error {
	cp := *batch
	r.s.transfers[batch.ID] = &cp
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.TransferBatch, error) {
	if b, ok := r.s.transfers[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *memTransferRepo) Delete(id string) error {
	if _, ok := r.s.transfers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.transfers, id)
	return nil
}

func (r *memTransferRepo) List(filter repository.BatchFilter) ([]*entity.TransferBatch, int, error) {
	var out []*entity.TransferBatch
	for _, b := range r.s.transfers {
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

// fakeTxRunner serializa las "transacciones" con el mutex del store y restaura
// el snapshot completo si el callback falla, como haría un Rollback.
type fakeTxRunner struct{ s *memStore }

var _ movement.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	checkoutRepo repository.CheckoutBatchRepository,
	transferRepo repository.TransferBatchRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items, checkouts, transfers := r.s.snapshot()
	err := fn(&memItemRepo{s: r.s}, &memCheckoutRepo{s: r.s}, &memTransferRepo{s: r.s})
	if err != nil {
		r.s.items, r.s.checkouts, r.s.transfers = items, checkouts, transfers
		return err
	}
	return nil
}

// memAuditRepo captura entradas de auditoría para poder afirmarlas.
type memAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditLog
}

func (r *memAuditRepo) Create(log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	return nil
}

func (r *memAuditRepo) List(filter repository.LogFilter) ([]*entity.AuditLog, int, error) {
	return r.entries, len(r.entries), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var testInv = config.InventoryConfig{
	Warehouses:        []string{"JAAN", "DW"},
	CheckoutWarehouse: "JAAN",
	LowStockThreshold: 5,
}

var (
	superAdmin = domain.Actor{ID: "u-1", Username: "root", Role: role.SuperAdmin}
	staffActor = domain.Actor{ID: "u-2", Username: "mesero", Role: role.Staff}
)

type fixture struct {
	store      *memStore
	auditRepo  *memAuditRepo
	checkoutUC *movement.CheckoutUseCase
	transferUC *movement.TransferUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	auditRepo := &memAuditRepo{}
	recorder := audit.NewRecorder(auditRepo, logger.New(logger.Config{Env: "production", Level: "error"}))
	runner := &fakeTxRunner{s: store}
	return &fixture{
		store:      store,
		auditRepo:  auditRepo,
		checkoutUC: movement.NewCheckoutUseCase(runner, &memCheckoutRepo{s: store}, testInv, recorder),
		transferUC: movement.NewTransferUseCase(runner, &memTransferRepo{s: store}, testInv, recorder),
	}
}

// seedItem crea un artículo directamente en el store.
func (f *fixture) seedItem(id, code, warehouse string, qty int) *entity.StockItem {
	it := &entity.StockItem{
		ID:        id,
		Name:      "Item " + code,
		Code:      code,
		Quantity:  qty,
		Price:     decimal.NewFromInt(10),
		Category:  "licores",
		Condition: entity.ConditionGood,
		Warehouse: warehouse,
	}
	f.store.items[id] = it
	return it
}

// qty devuelve la cantidad actual de (code, warehouse), o -1 si no hay fila.
func (f *fixture) qty(code, warehouse string) int {
	for _, it := range f.store.items {
		if it.Code == code && it.Warehouse == warehouse {
			return it.Quantity
		}
	}
	return -1
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_DescuentaStockYCreaLote(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)
	f.seedItem("i-2", "GIN-02", "JAAN", 4)

	out, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items: []dto.LineRequest{
			{ItemCode: "RON-01", Quantity: 3},
			{ItemCode: "GIN-02", Quantity: 2},
		},
		Reason: "evento viernes",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 2, f.qty("GIN-02", "JAAN"))
	assert.Equal(t, 2, out.Count, "conteo = número de líneas")
	assert.Equal(t, 5, out.TotalQuantity, "total = suma de cantidades")
	require.Len(t, f.store.checkouts, 1)

	batch := f.store.checkouts[out.BatchID]
	require.NotNil(t, batch)
	assert.Equal(t, "evento viernes", batch.Reason)
	assert.Equal(t, "JAAN", batch.Warehouse, "el checkout siempre sale de la bodega configurada")
	assert.Equal(t, batch.TotalItems, len(batch.Lines))
	assert.Equal(t, "Item RON-01", batch.Lines[0].ItemName, "las líneas guardan snapshot del nombre")
}

func TestCheckout_FalloEnUnaLineaNoAplicaNinguna(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)
	f.seedItem("i-2", "GIN-02", "JAAN", 4)

	_, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items: []dto.LineRequest{
			{ItemCode: "RON-01", Quantity: 5},
			{ItemCode: "GIN-02", Quantity: 999999},
		},
		Reason: "inventario imposible",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var itemErr *domain.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, "GIN-02", itemErr.ItemCode, "el error identifica la línea culpable")

	// Ni siquiera la línea viable se aplicó, y no quedó lote.
	assert.Equal(t, 10, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 4, f.qty("GIN-02", "JAAN"))
	assert.Empty(t, f.store.checkouts)
}

func TestCheckout_CodigosRepetidosSeAcumulan(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 5)

	// 3 + 3 = 6 > 5: debe fallar aunque cada línea por separado quepa.
	_, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items: []dto.LineRequest{
			{ItemCode: "RON-01", Quantity: 3},
			{ItemCode: "RON-01", Quantity: 3},
		},
		Reason: "doble línea",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.qty("RON-01", "JAAN"))

	// 3 + 2 = 5 cabe exacto.
	out, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items: []dto.LineRequest{
			{ItemCode: "RON-01", Quantity: 3},
			{ItemCode: "RON-01", Quantity: 2},
		},
		Reason: "doble línea",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 5, out.TotalQuantity)
}

func TestCheckout_ArticuloInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items:  []dto.LineRequest{{ItemCode: "NO-EXISTE", Quantity: 1}},
		Reason: "x",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_ValidacionDeEntrada(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	casos := []dto.CheckoutRequest{
		{Items: nil, Reason: "sin líneas"},
		{Items: []dto.LineRequest{{ItemCode: "RON-01", Quantity: 0}}, Reason: "cantidad cero"},
		{Items: []dto.LineRequest{{ItemCode: "RON-01", Quantity: -3}}, Reason: "cantidad negativa"},
		{Items: []dto.LineRequest{{ItemCode: "", Quantity: 1}}, Reason: "sin código"},
		{Items: []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}}, Reason: ""},
	}
	for _, in := range casos {
		_, err := f.checkoutUC.Checkout(context.Background(), staffActor, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 10, f.qty("RON-01", "JAAN"))
}

func TestCheckout_ConcurrenciaSoloUnoGana(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 1)

	const intentos = 2
	var wg sync.WaitGroup
	errs := make([]error, intentos)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
				Items:  []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}},
				Reason: "carrera",
			})
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, exitos, "con 1 unidad disponible exactamente un checkout debe ganar")
	assert.Equal(t, 0, f.qty("RON-01", "JAAN"), "el stock nunca baja de cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversión de checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCheckout_RestauraStockYBorraLote(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items:  []dto.LineRequest{{ItemCode: "RON-01", Quantity: 3}},
		Reason: "ida y vuelta",
	})
	require.NoError(t, err)
	require.Equal(t, 7, f.qty("RON-01", "JAAN"))

	require.NoError(t, f.checkoutUC.DeleteCheckout(context.Background(), superAdmin, out.BatchID))

	assert.Equal(t, 10, f.qty("RON-01", "JAAN"), "la reversión devuelve el stock exacto")
	assert.Empty(t, f.store.checkouts, "el lote revertido desaparece del historial")
}

func TestDeleteCheckout_RecreaArticuloBorrado(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items:  []dto.LineRequest{{ItemCode: "RON-01", Quantity: 4}},
		Reason: "antes del borrado",
	})
	require.NoError(t, err)

	// Alguien borró la fila del artículo después del checkout.
	delete(f.store.items, seeded.ID)

	require.NoError(t, f.checkoutUC.DeleteCheckout(context.Background(), superAdmin, out.BatchID))

	// Reaparece solo con lo que el snapshot conserva: nombre, código, cantidad.
	assert.Equal(t, 4, f.qty("RON-01", "JAAN"))
	for _, it := range f.store.items {
		if it.Code == "RON-01" {
			assert.Equal(t, "Item RON-01", it.Name)
			assert.True(t, it.Price.IsZero(), "el precio original se pierde en la recreación")
			assert.Equal(t, entity.ConditionGood, it.Condition)
		}
	}
}

func TestDeleteCheckout_SoloSuperAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items:  []dto.LineRequest{{ItemCode: "RON-01", Quantity: 3}},
		Reason: "protegido",
	})
	require.NoError(t, err)

	for _, actor := range []domain.Actor{
		staffActor,
		{ID: "u-3", Username: "gerente", Role: role.Admin},
		{ID: "u-4", Username: "nadie", Role: "intruso"},
	} {
		err := f.checkoutUC.DeleteCheckout(context.Background(), actor, out.BatchID)
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %q no debe poder revertir", actor.Role)
	}
	assert.Equal(t, 7, f.qty("RON-01", "JAAN"), "el rechazo no toca el stock")
	assert.Len(t, f.store.checkouts, 1)
}

func TestDeleteCheckout_LoteInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.checkoutUC.DeleteCheckout(context.Background(), superAdmin, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MueveYConservaElTotal(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)
	f.seedItem("i-2", "RON-01", "DW", 2)

	out, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items:         []dto.LineRequest{{ItemCode: "RON-01", Quantity: 4}},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 6, f.qty("RON-01", "DW"))
	assert.Equal(t, 12, f.qty("RON-01", "JAAN")+f.qty("RON-01", "DW"), "un traslado no crea ni destruye unidades")
	assert.Equal(t, 4, out.TotalQuantity)
	require.Len(t, f.store.transfers, 1)
}

func TestTransfer_CreaDestinoCopiandoCamposDescriptivos(t *testing.T) {
	f := newFixture(t)
	src := f.seedItem("i-1", "GIN-02", "JAAN", 8)
	src.Price = decimal.NewFromFloat(99.50)
	src.Category = "premium"
	src.Note = "lote importado"

	_, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items:         []dto.LineRequest{{ItemCode: "GIN-02", Quantity: 3}},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, f.qty("GIN-02", "JAAN"))
	assert.Equal(t, 3, f.qty("GIN-02", "DW"))
	for _, it := range f.store.items {
		if it.Code == "GIN-02" && it.Warehouse == "DW" {
			assert.Equal(t, src.Name, it.Name)
			assert.True(t, src.Price.Equal(it.Price), "el destino hereda el precio del origen")
			assert.Equal(t, "premium", it.Category)
			assert.Equal(t, "lote importado", it.Note)
		}
	}
}

func TestTransfer_InsuficienteNoAplicaNada(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)
	f.seedItem("i-2", "GIN-02", "JAAN", 2)

	_, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items: []dto.LineRequest{
			{ItemCode: "RON-01", Quantity: 5},
			{ItemCode: "GIN-02", Quantity: 3},
		},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 2, f.qty("GIN-02", "JAAN"))
	assert.Equal(t, -1, f.qty("RON-01", "DW"), "no debe aparecer fila en destino")
	assert.Empty(t, f.store.transfers)
}

func TestTransfer_BodegasInvalidas(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	casos := []dto.TransferRequest{
		{Items: []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}}, FromWarehouse: "JAAN", ToWarehouse: "JAAN"},
		{Items: []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}}, FromWarehouse: "JAAN", ToWarehouse: "BODEGA-X"},
		{Items: []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}}, FromWarehouse: "BODEGA-X", ToWarehouse: "DW"},
	}
	for _, in := range casos {
		_, err := f.transferUC.Transfer(context.Background(), staffActor, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversión de traslado
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteTransfer_DevuelveElStockAlOrigen(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items:         []dto.LineRequest{{ItemCode: "RON-01", Quantity: 4}},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.qty("RON-01", "JAAN"))
	require.Equal(t, 4, f.qty("RON-01", "DW"))

	require.NoError(t, f.transferUC.DeleteTransfer(context.Background(), superAdmin, out.BatchID))

	assert.Equal(t, 10, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 0, f.qty("RON-01", "DW"))
	assert.Empty(t, f.store.transfers)
}

func TestDeleteTransfer_DestinoConsumidoRechazaTodo(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items:         []dto.LineRequest{{ItemCode: "RON-01", Quantity: 4}},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.NoError(t, err)

	// El destino consumió parte de lo trasladado: ya no hay 4 para devolver.
	_, err = f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items:  []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}},
		Reason: "consumo en JAAN",
	})
	require.NoError(t, err)
	for _, it := range f.store.items {
		if it.Code == "RON-01" && it.Warehouse == "DW" {
			it.Quantity = 2
		}
	}

	err = f.transferUC.DeleteTransfer(context.Background(), superAdmin, out.BatchID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	var itemErr *domain.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, "RON-01", itemErr.ItemCode)
	assert.Equal(t, "DW", itemErr.Warehouse)

	// Nada cambió en ninguna de las dos bodegas y el lote sigue en el historial.
	assert.Equal(t, 5, f.qty("RON-01", "JAAN"))
	assert.Equal(t, 2, f.qty("RON-01", "DW"))
	require.Len(t, f.store.transfers, 1)
}

func TestDeleteTransfer_RecreaOrigenBorradoDesdeDestino(t *testing.T) {
	f := newFixture(t)
	src := f.seedItem("i-1", "GIN-02", "JAAN", 5)
	src.Price = decimal.NewFromFloat(42.00)

	out, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items:         []dto.LineRequest{{ItemCode: "GIN-02", Quantity: 5}},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.NoError(t, err)

	// La fila origen quedó en 0 y alguien la borró.
	delete(f.store.items, src.ID)

	require.NoError(t, f.transferUC.DeleteTransfer(context.Background(), superAdmin, out.BatchID))

	assert.Equal(t, 5, f.qty("GIN-02", "JAAN"))
	for _, it := range f.store.items {
		if it.Code == "GIN-02" && it.Warehouse == "JAAN" {
			assert.True(t, decimal.NewFromFloat(42.00).Equal(it.Price),
				"la recreación copia los campos descriptivos desde el destino")
		}
	}
}

func TestDeleteTransfer_SoloSuperAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.transferUC.Transfer(context.Background(), staffActor, dto.TransferRequest{
		Items:         []dto.LineRequest{{ItemCode: "RON-01", Quantity: 2}},
		FromWarehouse: "JAAN",
		ToWarehouse:   "DW",
	})
	require.NoError(t, err)

	err = f.transferUC.DeleteTransfer(context.Background(), staffActor, out.BatchID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, f.store.transfers, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_GeneranAuditoria(t *testing.T) {
	f := newFixture(t)
	f.seedItem("i-1", "RON-01", "JAAN", 10)

	out, err := f.checkoutUC.Checkout(context.Background(), staffActor, dto.CheckoutRequest{
		Items:  []dto.LineRequest{{ItemCode: "RON-01", Quantity: 1}},
		Reason: "auditable",
	})
	require.NoError(t, err)
	require.NoError(t, f.checkoutUC.DeleteCheckout(context.Background(), superAdmin, out.BatchID))

	require.Len(t, f.auditRepo.entries, 2)
	assert.Equal(t, "checkout.create", f.auditRepo.entries[0].Action)
	assert.Equal(t, staffActor.Username, f.auditRepo.entries[0].Username)
	assert.Equal(t, "checkout.delete", f.auditRepo.entries[1].Action)
	assert.Equal(t, superAdmin.Username, f.auditRepo.entries[1].Username)
}

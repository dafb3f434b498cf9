package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
	"github.com/jhoicas/home-inventory/internal/infrastructure/memory"
)

type engineFixture struct {
	store  *memory.Store
	engine *inventory.ReconciliationEngine
	levels *memory.InventoryLevelRepo
	txns   *memory.TransactionRepo
	itemID string
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	store := memory.NewStore()
	item := &entity.Item{Name: "Leche", MinThreshold: entity.DefaultMinThreshold}
	require.NoError(t, memory.NewItemRepository(store).Create(context.Background(), item))
	return &engineFixture{
		store:  store,
		engine: inventory.NewReconciliationEngine(store),
		levels: memory.NewInventoryLevelRepository(store),
		txns:   memory.NewTransactionRepository(store),
		itemID: item.ID,
	}
}

func (f *engineFixture) create(t *testing.T, typ entity.TransactionType, qty int64) *entity.Transaction {
	t.Helper()
	txn, err := f.engine.Create(context.Background(), entity.NewTransaction{ItemID: f.itemID, Type: typ, Quantity: qty})
	require.NoError(t, err)
	return txn
}

func (f *engineFixture) quantity(t *testing.T) int64 {
	t.Helper()
	l, err := f.levels.Get(context.Background(), f.itemID)
	require.NoError(t, err)
	if l == nil {
		return 0
	}
	return l.Quantity
}

func typePtr(t entity.TransactionType) *entity.TransactionType { return &t }
func int64Ptr(v int64) *int64                                    { return &v }
func strPtr(s string) *string                                    { return &s }

func TestEngine_Create_AcumulaEntradas(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, 4)
	f.create(t, entity.TransactionTypeIn, 6)
	assert.Equal(t, int64(10), f.quantity(t))
}

func TestEngine_Create_SalidaSinStockQuedaEnCero(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeOut, 7)
	assert.Equal(t, int64(0), f.quantity(t))
	assert.NotEmpty(t, txn.ID)
	assert.False(t, txn.CreatedAt.IsZero())

	// el registro se guarda aunque el inventario se recorte
	stored, err := f.txns.GetByID(context.Background(), txn.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.Quantity)
}

func TestEngine_Create_TipoSinDistinguirMayusculas(t *testing.T) {
	f := newEngineFixture(t)
	txn, err := f.engine.Create(context.Background(), entity.NewTransaction{ItemID: f.itemID, Type: "in", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeIn, txn.Type)
	assert.Equal(t, int64(3), f.quantity(t))
}

func TestEngine_Create_EntradaInvalida(t *testing.T) {
	f := newEngineFixture(t)
	cases := []entity.NewTransaction{
		{ItemID: f.itemID, Type: "TRANSFER", Quantity: 1},
		{ItemID: f.itemID, Type: entity.TransactionTypeIn, Quantity: -1},
		{ItemID: "", Type: entity.TransactionTypeIn, Quantity: 1},
	}
	for i, in := range cases {
		t.Run(fmt.Sprintf("caso_%d", i), func(t *testing.T) {
			_, err := f.engine.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(0), f.quantity(t))
}

func TestEngine_Create_ArticuloInexistenteNoDejaRastro(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.engine.Create(context.Background(), entity.NewTransaction{ItemID: "no-existe", Type: entity.TransactionTypeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.txns.List(context.Background(), repository.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEngine_Create_DesbordamientoNoVaciaElInventario(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, math.MaxInt64)

	_, err := f.engine.Create(context.Background(), entity.NewTransaction{ItemID: f.itemID, Type: entity.TransactionTypeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(math.MaxInt64), f.quantity(t))

	all, err := f.txns.List(context.Background(), repository.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1, "la transacción rechazada no queda registrada")
}

func TestEngine_Update_DesbordamientoNoTocaNada(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, math.MaxInt64)
	out := f.create(t, entity.TransactionTypeOut, 1)

	_, err := f.engine.Update(context.Background(), out.ID, entity.TransactionPatch{Type: typePtr(entity.TransactionTypeIn)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(math.MaxInt64-1), f.quantity(t))

	stored, err := f.txns.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeOut, stored.Type)
}

func TestEngine_Delete_DesbordamientoConservaLaSalida(t *testing.T) {
	f := newEngineFixture(t)
	out := f.create(t, entity.TransactionTypeOut, 5)
	f.create(t, entity.TransactionTypeIn, math.MaxInt64)

	_, err := f.engine.Delete(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(math.MaxInt64), f.quantity(t))

	stored, err := f.txns.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestEngine_Delete_RevierteEntrada(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 10)

	ok, err := f.engine.Delete(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), f.quantity(t))

	gone, err := f.txns.GetByID(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestEngine_Delete_RevierteSalida(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, 5)
	out := f.create(t, entity.TransactionTypeOut, 5)
	assert.Equal(t, int64(0), f.quantity(t))

	ok, err := f.engine.Delete(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), f.quantity(t))
}

// Borrar una salida que se recortó devuelve la cantidad completa, no la efectivamente restada.
func TestEngine_Delete_SalidaRecortadaDevuelveCantidadCompleta(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, 3)
	out := f.create(t, entity.TransactionTypeOut, 10)
	assert.Equal(t, int64(0), f.quantity(t))

	ok, err := f.engine.Delete(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(10), f.quantity(t))
}

func TestEngine_Delete_EntradaRecortadaAPiso(t *testing.T) {
	f := newEngineFixture(t)
	in := f.create(t, entity.TransactionTypeIn, 4)
	f.create(t, entity.TransactionTypeOut, 3)

	ok, err := f.engine.Delete(context.Background(), in.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), f.quantity(t))
}

func TestEngine_Delete_Inexistente(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, 2)

	ok, err := f.engine.Delete(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(2), f.quantity(t))

	all, err := f.txns.List(context.Background(), repository.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEngine_Delete_DosVeces(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 2)

	ok, err := f.engine.Delete(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.engine.Delete(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), f.quantity(t))
}

func TestEngine_Update_Cantidad(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 10)

	updated, err := f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{Quantity: int64Ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Quantity)
	assert.Equal(t, entity.TransactionTypeIn, updated.Type)
	assert.Equal(t, txn.CreatedAt, updated.CreatedAt)
	assert.Equal(t, int64(4), f.quantity(t))
}

func TestEngine_Update_CambioDeTipo(t *testing.T) {
	f := newEngineFixture(t)
	f.create(t, entity.TransactionTypeIn, 10)
	txn := f.create(t, entity.TransactionTypeIn, 3)
	assert.Equal(t, int64(13), f.quantity(t))

	// IN 3 -> OUT 3: delta combinado -6
	_, err := f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{Type: typePtr("out")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.quantity(t))
}

// Un solo recorte sobre el resultado final: 2 + (-2 - 5) = -5 -> 0. Volver a IN 5 suma 10.
func TestEngine_Update_UnSoloRecorte(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 2)

	_, err := f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{
		Type:     typePtr(entity.TransactionTypeOut),
		Quantity: int64Ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.quantity(t))

	_, err = f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{Type: typePtr(entity.TransactionTypeIn)})
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.quantity(t))
}

func TestEngine_Update_SoloNotaNoTocaInventario(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 8)
	before, err := f.levels.Get(context.Background(), f.itemID)
	require.NoError(t, err)

	updated, err := f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{Note: strPtr("compra semanal")})
	require.NoError(t, err)
	require.NotNil(t, updated.Note)
	assert.Equal(t, "compra semanal", *updated.Note)

	after, err := f.levels.Get(context.Background(), f.itemID)
	require.NoError(t, err)
	assert.Equal(t, before.Quantity, after.Quantity)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestEngine_Update_PatchVacioDevuelveOriginal(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 8)

	updated, err := f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{})
	require.NoError(t, err)
	assert.Equal(t, txn.ID, updated.ID)
	assert.Equal(t, int64(8), updated.Quantity)
	assert.Equal(t, int64(8), f.quantity(t))
}

func TestEngine_Update_Inexistente(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.engine.Update(context.Background(), "no-existe", entity.TransactionPatch{Quantity: int64Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEngine_Update_Invalido(t *testing.T) {
	f := newEngineFixture(t)
	txn := f.create(t, entity.TransactionTypeIn, 8)

	_, err := f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{Quantity: int64Ptr(-2)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.engine.Update(context.Background(), txn.ID, entity.TransactionPatch{Type: typePtr("MOVE")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(8), f.quantity(t))
}

// El inventario nunca queda negativo en ninguna secuencia de operaciones.
func TestEngine_NuncaNegativo(t *testing.T) {
	f := newEngineFixture(t)
	var ids []string
	ops := []struct {
		typ entity.TransactionType
		qty int64
	}{
		{entity.TransactionTypeIn, 5}, {entity.TransactionTypeOut, 9}, {entity.TransactionTypeIn, 1},
		{entity.TransactionTypeOut, 2}, {entity.TransactionTypeIn, 7}, {entity.TransactionTypeOut, 20},
	}
	for _, op := range ops {
		ids = append(ids, f.create(t, op.typ, op.qty).ID)
		assert.GreaterOrEqual(t, f.quantity(t), int64(0))
	}
	for i, id := range ids {
		if i%2 == 0 {
			_, err := f.engine.Update(context.Background(), id, entity.TransactionPatch{Type: typePtr(entity.TransactionTypeOut)})
			require.NoError(t, err)
		} else {
			_, err := f.engine.Delete(context.Background(), id)
			require.NoError(t, err)
		}
		assert.GreaterOrEqual(t, f.quantity(t), int64(0))
	}
}

func TestEngine_Concurrente(t *testing.T) {
	f := newEngineFixture(t)
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Create(context.Background(), entity.NewTransaction{ItemID: f.itemID, Type: entity.TransactionTypeIn, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(workers), f.quantity(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos (TxRunner simulado)
// ──────────────────────────────────────────────────────────────────────────────

func zeroBackOff() backoff.BackOff { return &backoff.ZeroBackOff{} }

func TestEngine_ReintentaConflictoDeConcurrencia(t *testing.T) {
	f := newEngineFixture(t)
	ctrl := gomock.NewController(t)
	runner := inventory.NewMockTxRunner(ctrl)

	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ErrConcurrentUpdate).Times(2),
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(repository.TransactionRepository, repository.InventoryLevelRepository) error) error {
				return f.store.Run(ctx, fn)
			}),
	)

	engine := inventory.NewReconciliationEngine(runner, inventory.WithBackOff(zeroBackOff))
	txn, err := engine.Create(context.Background(), entity.NewTransaction{ItemID: f.itemID, Type: entity.TransactionTypeIn, Quantity: 2})
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, int64(2), f.quantity(t))
}

func TestEngine_AgotaReintentos(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := inventory.NewMockTxRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ErrConcurrentUpdate).Times(4)

	engine := inventory.NewReconciliationEngine(runner, inventory.WithBackOff(zeroBackOff), inventory.WithMaxTries(4))
	_, err := engine.Delete(context.Background(), "txn-1")
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
}

func TestEngine_ErrorDePersistenciaNoSeReintenta(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := inventory.NewMockTxRunner(ctrl)
	storeErr := fmt.Errorf("insert: %w: %w", domain.ErrPersistence, errors.New("disco lleno"))
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(storeErr).Times(1)

	engine := inventory.NewReconciliationEngine(runner, inventory.WithBackOff(zeroBackOff))
	_, err := engine.Update(context.Background(), "txn-1", entity.TransactionPatch{Quantity: int64Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// Si falla la escritura del inventario, la transacción creada no queda registrada.
func TestEngine_FalloAlEscribirInventarioHaceRollback(t *testing.T) {
	f := newEngineFixture(t)
	ctrl := gomock.NewController(t)
	runner := inventory.NewMockTxRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(repository.TransactionRepository, repository.InventoryLevelRepository) error) error {
			return f.store.Run(ctx, func(txnRepo repository.TransactionRepository, levelRepo repository.InventoryLevelRepository) error {
				return fn(txnRepo, failingLevels{levelRepo})
			})
		})

	engine := inventory.NewReconciliationEngine(runner, inventory.WithBackOff(zeroBackOff))
	_, err := engine.Create(context.Background(), entity.NewTransaction{ItemID: f.itemID, Type: entity.TransactionTypeIn, Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	all, err := f.txns.List(context.Background(), repository.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, int64(0), f.quantity(t))
}

type failingLevels struct {
	repository.InventoryLevelRepository
}

func (failingLevels) Set(context.Context, string, int64) (*entity.InventoryLevel, error) {
	return nil, fmt.Errorf("set: %w", domain.ErrPersistence)
}

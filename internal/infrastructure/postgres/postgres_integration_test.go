package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	"github.com/jhoicas/home-inventory/internal/infrastructure/postgres"
)

// testPool conecta a TEST_DATABASE_URL; sin ella el test se omite.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("postgres no disponible: %v", err)
	}
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func newItem(t *testing.T, pool *pgxpool.Pool) *entity.Item {
	t.Helper()
	it := &entity.Item{Name: "test-" + t.Name(), MinThreshold: 1}
	require.NoError(t, postgres.NewItemRepository(pool).Create(context.Background(), it))
	t.Cleanup(func() {
		_, _ = postgres.NewItemRepository(pool).Delete(context.Background(), it.ID)
	})
	return it
}

func TestPostgres_Engine_Conciliacion(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	item := newItem(t, pool)
	engine := inventory.NewReconciliationEngine(postgres.NewTxRunner(pool))
	levels := postgres.NewInventoryLevelRepository(pool)

	in, err := engine.Create(ctx, entity.NewTransaction{ItemID: item.ID, Type: entity.TransactionTypeIn, Quantity: 3})
	require.NoError(t, err)
	out, err := engine.Create(ctx, entity.NewTransaction{ItemID: item.ID, Type: entity.TransactionTypeOut, Quantity: 10})
	require.NoError(t, err)

	l, err := levels.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), l.Quantity)

	ok, err := engine.Delete(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	l, err = levels.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), l.Quantity)

	q := int64(1)
	updated, err := engine.Update(ctx, in.ID, entity.TransactionPatch{Quantity: &q})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Quantity)
	l, err = levels.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), l.Quantity)

	ok, err = engine.Delete(ctx, "00000000-0000-0000-0000-00000000dead")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = engine.Update(ctx, "no-es-uuid", entity.TransactionPatch{Quantity: &q})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_Engine_ItemIDNoUUID(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	engine := inventory.NewReconciliationEngine(postgres.NewTxRunner(pool))

	_, err := engine.Create(ctx, entity.NewTransaction{ItemID: "abc", Type: entity.TransactionTypeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	query := inventory.NewQueryUseCase(
		postgres.NewTransactionRepository(pool),
		postgres.NewInventoryLevelRepository(pool),
		postgres.NewItemRepository(pool),
	)
	list, err := query.ListTransactionsByItem(ctx, "abc", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostgres_Engine_Concurrente(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	item := newItem(t, pool)
	engine := inventory.NewReconciliationEngine(postgres.NewTxRunner(pool), inventory.WithMaxTries(10))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Create(ctx, entity.NewTransaction{ItemID: item.ID, Type: entity.TransactionTypeIn, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	l, err := postgres.NewInventoryLevelRepository(pool).Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), l.Quantity)
}

func TestPostgres_StockIn(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	uc := inventory.NewStockInUseCase(postgres.NewTxRunner(pool), postgres.NewCategoryRepository(pool), nil, zerolog.Nop())

	barcode := uuid.NewString()
	shelf := "estante-" + barcode[:8]
	res, err := uc.StockIn(ctx, inventory.StockInInput{Barcode: barcode, Location: &shelf, Quantity: 2})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = postgres.NewItemRepository(pool).Delete(ctx, res.Item.ID)
		if loc, _ := postgres.NewLocationRepository(pool).GetByName(ctx, shelf); loc != nil {
			_, _ = postgres.NewLocationRepository(pool).Delete(ctx, loc.ID)
		}
	})
	assert.True(t, res.IsNew)

	res, err = uc.StockIn(ctx, inventory.StockInInput{Barcode: barcode, Location: &shelf})
	require.NoError(t, err)
	assert.False(t, res.IsNew)
	assert.Equal(t, int64(3), res.Stock.Quantity)

	// sin ubicación es otra fila
	res, err = uc.StockIn(ctx, inventory.StockInInput{Barcode: barcode})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Stock.Quantity)

	dup := &entity.Item{Name: "dup", Barcode: &barcode}
	err = postgres.NewItemRepository(pool).Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

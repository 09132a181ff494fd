package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/century-soap/century-soap/internal/shared"
)

type memTxRepo struct {
	product LockedProduct
	missing bool

	updates    []StockUpdate
	stockSet   *int
	committed  bool
	rolledBack bool
}

func (m *memTxRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	err := fn(ctx, m)
	if err != nil {
		m.rolledBack = true
		m.updates = nil
		m.stockSet = nil
		return err
	}
	m.committed = true
	return nil
}

func (m *memTxRepo) ListUpdates(ctx context.Context, filter UpdatesFilter) ([]StockUpdate, error) {
	return m.updates, nil
}

func (m *memTxRepo) GetProductForUpdate(ctx context.Context, productID string) (LockedProduct, error) {
	if m.missing {
		return LockedProduct{}, shared.ErrNotFound
	}
	return m.product, nil
}

func (m *memTxRepo) UpdateProductStock(ctx context.Context, productID string, newStock int, now time.Time) error {
	m.stockSet = &newStock
	return nil
}

func (m *memTxRepo) InsertStockUpdate(ctx context.Context, update StockUpdate) error {
	m.updates = append(m.updates, update)
	return nil
}

var actor = shared.Actor{ID: "u-1", Name: "Admin", Role: "admin"}

func TestApplyAdjustmentRestock(t *testing.T) {
	repo := &memTxRepo{product: LockedProduct{ID: "p-1", Name: "Liquid Soap 1L", Stock: 40}}
	svc := NewService(repo, nil, nil)

	record, err := svc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: "p-1",
		Delta:     25,
		Reason:    "production batch 113",
	}, actor)
	require.NoError(t, err)
	require.True(t, repo.committed)
	require.Equal(t, UpdateTypeRestock, record.Type)
	require.Equal(t, 25, record.Quantity)
	require.Equal(t, 40, record.PreviousStock)
	require.Equal(t, 65, record.NewStock)
	require.NotNil(t, repo.stockSet)
	require.Equal(t, 65, *repo.stockSet)
}

func TestApplyAdjustmentRemoval(t *testing.T) {
	repo := &memTxRepo{product: LockedProduct{ID: "p-1", Name: "Liquid Soap 1L", Stock: 40}}
	svc := NewService(repo, nil, nil)

	record, err := svc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: "p-1",
		Delta:     -15,
		Reason:    "damaged jerry cans",
	}, actor)
	require.NoError(t, err)
	require.Equal(t, UpdateTypeAdjustment, record.Type)
	require.Equal(t, 15, record.Quantity)
	require.Equal(t, 25, record.NewStock)
}

func TestApplyAdjustmentRejectsNegativeStock(t *testing.T) {
	repo := &memTxRepo{product: LockedProduct{ID: "p-1", Name: "Liquid Soap 1L", Stock: 10}}
	svc := NewService(repo, nil, nil)

	_, err := svc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: "p-1",
		Delta:     -11,
		Reason:    "stocktake",
	}, actor)
	require.ErrorIs(t, err, ErrNegativeStock)
	require.True(t, repo.rolledBack)
	require.Nil(t, repo.stockSet)
	require.Empty(t, repo.updates)
}

func TestApplyAdjustmentRejectsZeroDelta(t *testing.T) {
	repo := &memTxRepo{product: LockedProduct{ID: "p-1", Stock: 10}}
	svc := NewService(repo, nil, nil)

	_, err := svc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: "p-1",
		Delta:     0,
		Reason:    "noop",
	}, actor)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.False(t, repo.committed)
}

func TestApplyAdjustmentMissingProduct(t *testing.T) {
	repo := &memTxRepo{missing: true}
	svc := NewService(repo, nil, nil)

	_, err := svc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: "nope",
		Delta:     5,
		Reason:    "restock",
	}, actor)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

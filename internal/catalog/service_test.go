package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/century-soap/century-soap/internal/shared"
)

type mockRepo struct {
	products map[string]Product
	order    []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{products: map[string]Product{}}
}

func (m *mockRepo) Get(ctx context.Context, id string) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	var result []Product
	for _, id := range m.order {
		result = append(result, m.products[id])
	}
	total := len(result)
	if filters.Offset >= len(result) {
		result = nil
	} else if filters.Offset > 0 {
		result = result[filters.Offset:]
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, total, nil
}

func (m *mockRepo) Create(ctx context.Context, p Product) error {
	m.products[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockRepo) Update(ctx context.Context, p Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return shared.ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type mockAudit struct {
	logs []shared.AuditLog
}

func (m *mockAudit) Record(ctx context.Context, log shared.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

var testActor = shared.Actor{ID: "u-1", Name: "Admin", Role: "admin"}

func TestCreateProduct(t *testing.T) {
	repo := newMockRepo()
	audit := &mockAudit{}
	svc := NewService(repo, audit)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Category:     CategoryLiquidSoap,
		Name:         "Liquid Soap 5L",
		Size:         5,
		SizeUnit:     SizeUnitLiter,
		Unit:         SaleUnitJerryCan,
		RegularPrice: 5000,
		RandomPrice:  6000,
		Stock:        60,
		MinStock:     20,
	}, testActor)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, StockStatusGood, p.StockStatus())
	require.Len(t, audit.logs, 1)
	require.Equal(t, "catalog:create", audit.logs[0].Action)
}

func TestCreateProductRejectsBadCategory(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	_, err := svc.Create(context.Background(), CreateProductRequest{
		Category:     "BAR_SOAP",
		Name:         "Bar Soap",
		Size:         1,
		SizeUnit:     SizeUnitLiter,
		Unit:         SaleUnitBottle,
		RegularPrice: 100,
		RandomPrice:  120,
	}, testActor)
	require.Error(t, err)
}

func TestUpdateProductDoesNotTouchStock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Category:     CategoryHandwash,
		Name:         "Handwash 500ml",
		Size:         500,
		SizeUnit:     SizeUnitMilliliter,
		Unit:         SaleUnitBottle,
		RegularPrice: 900,
		RandomPrice:  1100,
		Stock:        140,
		MinStock:     40,
	}, testActor)
	require.NoError(t, err)

	newPrice := int64(950)
	updated, err := svc.Update(context.Background(), p.ID, UpdateProductRequest{
		RegularPrice: &newPrice,
	}, testActor)
	require.NoError(t, err)
	require.Equal(t, int64(950), updated.RegularPrice)
	require.Equal(t, 140, updated.Stock)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	mk := func(name string, stock, minStock int) {
		_, err := svc.Create(context.Background(), CreateProductRequest{
			Category:     CategoryLiquidSoap,
			Name:         name,
			Size:         1,
			SizeUnit:     SizeUnitLiter,
			Unit:         SaleUnitBottle,
			RegularPrice: 1200,
			RandomPrice:  1500,
			Stock:        stock,
			MinStock:     minStock,
		}, testActor)
		require.NoError(t, err)
	}
	mk("low", 10, 10)
	mk("medium", 15, 10)
	mk("good", 50, 10)

	views, total, err := svc.List(context.Background(), ListFilters{Status: StockStatusLow})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, views, 1)
	require.Equal(t, "low", views[0].Name)
	require.Equal(t, StockStatusLow, views[0].Status)
}

func TestListStatusFilterSeesAllPages(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	mk := func(name string, stock int) {
		_, err := svc.Create(context.Background(), CreateProductRequest{
			Category:     CategoryLiquidSoap,
			Name:         name,
			Size:         1,
			SizeUnit:     SizeUnitLiter,
			Unit:         SaleUnitBottle,
			RegularPrice: 1200,
			RandomPrice:  1500,
			Stock:        stock,
			MinStock:     10,
		}, testActor)
		require.NoError(t, err)
	}
	// the only low product sits beyond the first page
	mk("good-1", 50)
	mk("good-2", 60)
	mk("low", 5)

	views, total, err := svc.List(context.Background(), ListFilters{Status: StockStatusLow, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, views, 1)
	require.Equal(t, "low", views[0].Name)
}

func TestListStatusFilterPaginatesFilteredViews(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	for _, name := range []string{"low-1", "low-2", "low-3"} {
		_, err := svc.Create(context.Background(), CreateProductRequest{
			Category:     CategoryLiquidSoap,
			Name:         name,
			Size:         1,
			SizeUnit:     SizeUnitLiter,
			Unit:         SaleUnitBottle,
			RegularPrice: 1200,
			RandomPrice:  1500,
			Stock:        5,
			MinStock:     10,
		}, testActor)
		require.NoError(t, err)
	}

	views, total, err := svc.List(context.Background(), ListFilters{Status: StockStatusLow, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, views, 2)

	views, total, err = svc.List(context.Background(), ListFilters{Status: StockStatusLow, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, views, 1)
	require.Equal(t, "low-3", views[0].Name)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	err := svc.Delete(context.Background(), "nope", testActor)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

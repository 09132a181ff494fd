package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/century-soap/century-soap/internal/catalog"
	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/sales"
)

type mockSales struct {
	rows  []sales.Sale
	calls int
}

func (m *mockSales) List(ctx context.Context, filters sales.ListFilters) ([]sales.Sale, int, error) {
	m.calls++
	var out []sales.Sale
	for _, s := range m.rows {
		if !filters.From.IsZero() && s.Date.Before(filters.From) {
			continue
		}
		if !filters.To.IsZero() && s.Date.After(filters.To) {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

type mockClients struct {
	rows []clients.Client
}

func (m *mockClients) ListAll(ctx context.Context) ([]clients.Client, error) {
	return m.rows, nil
}

type mockProducts struct {
	rows []catalog.Product
}

func (m *mockProducts) List(ctx context.Context, filters catalog.ListFilters) ([]catalog.Product, int, error) {
	return m.rows, len(m.rows), nil
}

func newTestService(t *testing.T, salesPort *mockSales, products []catalog.Product) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewService(salesPort, &mockClients{}, &mockProducts{rows: products}, NewCache(client, time.Minute))
	svc.now = func() time.Time { return time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestBuildPeriodCachesResult(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	salesPort := &mockSales{rows: []sales.Sale{
		{ID: "s-1", ProductID: "p-1", ProductName: "Liquid Soap 1L", Quantity: 1,
			TotalAmount: 1500, ClientType: "random", PaymentMethod: sales.PaymentCash,
			PaymentStatus: sales.StatusPaid, SellerID: "u-1", SellerName: "Eric",
			Date: now.AddDate(0, 0, -2)},
	}}
	svc := newTestService(t, salesPort, nil)

	first, err := svc.BuildPeriod(context.Background(), PeriodMonth)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalSales)
	require.Equal(t, int64(1500), first.TotalRevenue)
	callsAfterFirst := salesPort.calls

	second, err := svc.BuildPeriod(context.Background(), PeriodMonth)
	require.NoError(t, err)
	require.Equal(t, first.TotalRevenue, second.TotalRevenue)
	require.Equal(t, callsAfterFirst, salesPort.calls)
}

func TestBuildPeriodRejectsUnknown(t *testing.T) {
	svc := newTestService(t, &mockSales{}, nil)
	_, err := svc.BuildPeriod(context.Background(), Period("decade"))
	require.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	products := []catalog.Product{
		{ID: "p-1", Name: "Low", Stock: 5, MinStock: 10},
		{ID: "p-2", Name: "Good", Stock: 100, MinStock: 10},
	}
	salesPort := &mockSales{rows: []sales.Sale{
		{ID: "s-1", TotalAmount: 2000, Date: now.Add(-time.Hour)},
		{ID: "s-2", TotalAmount: 3000, Date: now.AddDate(0, 0, -5)},
		{ID: "s-3", TotalAmount: 10000, Date: now.AddDate(0, -1, 0)},
	}}
	svc := newTestService(t, salesPort, products)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalProducts)
	require.Equal(t, 105, stats.TotalStock)
	require.Equal(t, 1, stats.LowStockProducts)
	require.Equal(t, 1, stats.TodaySales)
	require.Equal(t, int64(2000), stats.TodayRevenue)
	require.Equal(t, int64(5000), stats.MonthlyRevenue)
	// previous month had 10000, this month 5000: growth is -50%
	require.InDelta(t, -50.0, stats.MonthlyGrowth, 0.01)
}

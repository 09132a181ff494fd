package reports

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/century-soap/century-soap/internal/catalog"
	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/sales"
)

// SalesPort reads sales for aggregation.
type SalesPort interface {
	List(ctx context.Context, filters sales.ListFilters) ([]sales.Sale, int, error)
}

// ClientsPort reads clients for the top-clients table.
type ClientsPort interface {
	ListAll(ctx context.Context) ([]clients.Client, error)
}

// ProductsPort reads products for the dashboard.
type ProductsPort interface {
	List(ctx context.Context, filters catalog.ListFilters) ([]catalog.Product, int, error)
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalProducts    int     `json:"total_products"`
	TotalStock       int     `json:"total_stock"`
	LowStockProducts int     `json:"low_stock_products"`
	TodaySales       int     `json:"today_sales"`
	TodayRevenue     int64   `json:"today_revenue"`
	MonthlyRevenue   int64   `json:"monthly_revenue"`
	MonthlyGrowth    float64 `json:"monthly_growth"`
}

// Service builds reports, caching results behind the versioned cache and
// collapsing concurrent identical builds via singleflight.
type Service struct {
	sales    SalesPort
	clients  ClientsPort
	products ProductsPort
	cache    *Cache
	group    singleflight.Group
	now      func() time.Time
}

// NewService builds a Service. Cache may be nil, in which case every call
// rebuilds.
func NewService(salesPort SalesPort, clientsPort ClientsPort, productsPort ProductsPort, cache *Cache) *Service {
	return &Service{
		sales:    salesPort,
		clients:  clientsPort,
		products: productsPort,
		cache:    cache,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// BuildPeriod builds the report for a named preset window ending now.
func (s *Service) BuildPeriod(ctx context.Context, period Period) (ReportData, error) {
	from, to, err := period.Range(s.now())
	if err != nil {
		return ReportData{}, err
	}
	return s.buildCached(ctx, "reports:"+string(period)+":"+to.Format("2006-01-02"), from, to)
}

// BuildRange builds the report for an explicit window.
func (s *Service) BuildRange(ctx context.Context, from, to time.Time) (ReportData, error) {
	key := "reports:range:" + from.Format("2006-01-02") + ":" + to.Format("2006-01-02")
	return s.buildCached(ctx, key, from, to)
}

func (s *Service) buildCached(ctx context.Context, keyBase string, from, to time.Time) (ReportData, error) {
	key, err := s.cache.BuildKey(ctx, keyBase)
	if err != nil {
		return ReportData{}, err
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var report ReportData
		err := s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
			return s.build(ctx, from, to)
		})
		return report, err
	})
	if err != nil {
		return ReportData{}, err
	}
	return result.(ReportData), nil
}

func (s *Service) build(ctx context.Context, from, to time.Time) (ReportData, error) {
	saleRows, _, err := s.sales.List(ctx, sales.ListFilters{From: from, To: to})
	if err != nil {
		return ReportData{}, err
	}
	clientRows, err := s.clients.ListAll(ctx)
	if err != nil {
		return ReportData{}, err
	}
	return Build(saleRows, clientRows, from, to), nil
}

// Dashboard computes the landing-page stats. Not cached: the queries are
// cheap and the numbers must reflect the latest sale immediately.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	products, total, err := s.products.List(ctx, catalog.ListFilters{})
	if err != nil {
		return DashboardStats{}, err
	}
	stats.TotalProducts = total
	for _, p := range products {
		stats.TotalStock += p.Stock
		if p.StockStatus() == catalog.StockStatusLow {
			stats.LowStockProducts++
		}
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todaySales, _, err := s.sales.List(ctx, sales.ListFilters{From: dayStart, To: now})
	if err != nil {
		return DashboardStats{}, err
	}
	stats.TodaySales = len(todaySales)
	for _, sale := range todaySales {
		stats.TodayRevenue += sale.TotalAmount
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthSales, _, err := s.sales.List(ctx, sales.ListFilters{From: monthStart, To: now})
	if err != nil {
		return DashboardStats{}, err
	}
	for _, sale := range monthSales {
		stats.MonthlyRevenue += sale.TotalAmount
	}

	prevStart := monthStart.AddDate(0, -1, 0)
	prevSales, _, err := s.sales.List(ctx, sales.ListFilters{From: prevStart, To: monthStart.Add(-time.Nanosecond)})
	if err != nil {
		return DashboardStats{}, err
	}
	var prevRevenue int64
	for _, sale := range prevSales {
		prevRevenue += sale.TotalAmount
	}
	if prevRevenue > 0 {
		stats.MonthlyGrowth = float64(stats.MonthlyRevenue-prevRevenue) / float64(prevRevenue) * 100
	}

	return stats, nil
}

package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/sales"
)

var (
	windowFrom = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	windowTo   = time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
)

func sale(id, productID, productName string, quantity int, amount int64, opts func(*sales.Sale)) sales.Sale {
	s := sales.Sale{
		ID:            id,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		TotalAmount:   amount,
		ClientType:    "random",
		PaymentMethod: sales.PaymentCash,
		PaymentStatus: sales.StatusPaid,
		SellerID:      "u-1",
		SellerName:    "Eric",
		Date:          windowFrom.AddDate(0, 0, 10),
	}
	if opts != nil {
		opts(&s)
	}
	return s
}

func TestBuildEmptyWindow(t *testing.T) {
	report := Build(nil, nil, windowFrom, windowTo)
	require.Zero(t, report.TotalSales)
	require.Zero(t, report.TotalRevenue)
	require.Empty(t, report.TopProducts)
	require.Empty(t, report.TopSellers)
	require.Empty(t, report.TopClients)
}

func TestBuildPartitionsByMethodAndTier(t *testing.T) {
	rows := []sales.Sale{
		sale("s-1", "p-1", "Liquid Soap 1L", 10, 15000, nil),
		sale("s-2", "p-1", "Liquid Soap 1L", 5, 7500, func(s *sales.Sale) {
			s.PaymentMethod = sales.PaymentMoMo
			s.ClientType = "regular"
			s.PaymentStatus = sales.StatusNotPaid
		}),
	}
	report := Build(rows, nil, windowFrom, windowTo)

	require.Equal(t, 2, report.TotalSales)
	require.Equal(t, 15, report.TotalUnits)
	require.Equal(t, int64(22500), report.TotalRevenue)

	require.Equal(t, 1, report.CashSales)
	require.Equal(t, int64(15000), report.CashRevenue)
	require.Equal(t, 1, report.MomoSales)
	require.Equal(t, int64(7500), report.MomoRevenue)

	require.Equal(t, 1, report.RegularSales)
	require.Equal(t, int64(7500), report.RegularRevenue)
	require.Equal(t, 1, report.RandomSales)
	require.Equal(t, int64(15000), report.RandomRevenue)

	require.Equal(t, int64(15000), report.PaidRevenue)
	require.Equal(t, int64(7500), report.UnpaidRevenue)
}

func TestBuildExcludesSalesOutsideWindow(t *testing.T) {
	rows := []sales.Sale{
		sale("s-1", "p-1", "Liquid Soap 1L", 1, 1500, nil),
		sale("s-2", "p-1", "Liquid Soap 1L", 1, 1500, func(s *sales.Sale) {
			s.Date = windowFrom.AddDate(0, 0, -1)
		}),
		sale("s-3", "p-1", "Liquid Soap 1L", 1, 1500, func(s *sales.Sale) {
			s.Date = windowTo.Add(time.Hour)
		}),
	}
	report := Build(rows, nil, windowFrom, windowTo)
	require.Equal(t, 1, report.TotalSales)
	require.Equal(t, int64(1500), report.TotalRevenue)
}

func TestBuildTopProductsCapsAtFive(t *testing.T) {
	var rows []sales.Sale
	for i := 0; i < 7; i++ {
		id := string(rune('a' + i))
		rows = append(rows, sale("s-"+id, "p-"+id, "Product "+id, 1, int64(1000*(i+1)), nil))
	}
	report := Build(rows, nil, windowFrom, windowTo)
	require.Len(t, report.TopProducts, 5)
	// sorted by revenue descending
	require.Equal(t, int64(7000), report.TopProducts[0].Revenue)
	require.Equal(t, int64(3000), report.TopProducts[4].Revenue)
}

func TestBuildTopProductsTieKeepsFirstSeen(t *testing.T) {
	rows := []sales.Sale{
		sale("s-1", "p-1", "First", 1, 5000, nil),
		sale("s-2", "p-2", "Second", 1, 5000, nil),
	}
	report := Build(rows, nil, windowFrom, windowTo)
	require.Equal(t, "First", report.TopProducts[0].Name)
	require.Equal(t, "Second", report.TopProducts[1].Name)
}

func TestBuildTopClients(t *testing.T) {
	id1, id2 := "c-1", "c-2"
	rows := []sales.Sale{
		sale("s-1", "p-1", "Liquid Soap 1L", 1, 1500, func(s *sales.Sale) { s.ClientID = &id1 }),
		sale("s-2", "p-1", "Liquid Soap 1L", 1, 1500, func(s *sales.Sale) { s.ClientID = &id1 }),
	}
	clientRows := []clients.Client{
		{ID: id1, Name: "Kigali Mart", TotalPurchases: 30000},
		{ID: id2, Name: "Hotel", TotalPurchases: 90000},
		{ID: "c-3", Name: "Never Bought", TotalPurchases: 0},
	}
	report := Build(rows, clientRows, windowFrom, windowTo)

	require.Len(t, report.TopClients, 2)
	// ranked by all-time purchases
	require.Equal(t, "Hotel", report.TopClients[0].Name)
	require.Equal(t, 0, report.TopClients[0].SalesCount)
	require.Equal(t, "Kigali Mart", report.TopClients[1].Name)
	require.Equal(t, 2, report.TopClients[1].SalesCount)
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	from, to, err := PeriodWeek.Range(now)
	require.NoError(t, err)
	require.Equal(t, now, to)
	require.Equal(t, now.AddDate(0, 0, -7), from)

	from, _, err = PeriodYear.Range(now)
	require.NoError(t, err)
	require.Equal(t, now.AddDate(-1, 0, 0), from)

	_, _, err = Period("fortnight").Range(now)
	require.ErrorIs(t, err, ErrUnknownPeriod)
}

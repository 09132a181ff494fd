package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteReportCSV(t *testing.T) {
	report := ReportData{
		From:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		TotalSales:   3,
		TotalRevenue: 1250000,
		CashSales:    2,
		CashRevenue:  750000,
		MomoSales:    1,
		MomoRevenue:  500000,
		TopProducts: []ProductStat{
			{ProductID: "p-1", Name: "Liquid Soap 5L", Quantity: 100, Revenue: 500000},
		},
		TopSellers: []SellerStat{
			{SellerID: "u-1", Name: "Eric", Count: 3, Revenue: 1250000},
		},
		TopClients: []ClientStat{
			{ClientID: "c-1", Name: "Kigali Mart", SalesCount: 2, Revenue: 900000},
		},
	}

	var sb strings.Builder
	require.NoError(t, writeReportCSV(&sb, report))
	out := sb.String()

	require.Contains(t, out, "# Century Soap Sales Report,2026-08-01,2026-08-31")
	require.Contains(t, out, "Total,3,\"1,250,000\"")
	require.Contains(t, out, "Liquid Soap 5L,100,\"500,000\"")
	require.Contains(t, out, "Kigali Mart,2,\"900,000\"")
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "0", formatAmount(0))
	require.Equal(t, "1,500", formatAmount(1500))
	require.Equal(t, "1,250,000", formatAmount(1250000))
}

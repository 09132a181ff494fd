package reports

import (
	"sort"
	"time"

	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/sales"
)

const topN = 5

// ProductStat is one row of the top-products table.
type ProductStat struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

// SellerStat is one row of the top-sellers table.
type SellerStat struct {
	SellerID string `json:"seller_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Revenue  int64  `json:"revenue"`
}

// ClientStat is one row of the top-clients table. Revenue is the client's
// all-time purchase total; SalesCount counts sales inside the report window.
type ClientStat struct {
	ClientID   string `json:"client_id"`
	Name       string `json:"name"`
	SalesCount int    `json:"sales_count"`
	Revenue    int64  `json:"revenue"`
}

// ReportData is the aggregated sales report for one window.
type ReportData struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalSales   int   `json:"total_sales"`
	TotalUnits   int   `json:"total_units"`
	TotalRevenue int64 `json:"total_revenue"`

	CashSales   int   `json:"cash_sales"`
	CashRevenue int64 `json:"cash_revenue"`
	MomoSales   int   `json:"momo_sales"`
	MomoRevenue int64 `json:"momo_revenue"`

	RegularSales   int   `json:"regular_sales"`
	RegularRevenue int64 `json:"regular_revenue"`
	RandomSales    int   `json:"random_sales"`
	RandomRevenue  int64 `json:"random_revenue"`

	PaidRevenue   int64 `json:"paid_revenue"`
	UnpaidRevenue int64 `json:"unpaid_revenue"`

	TopProducts []ProductStat `json:"top_products"`
	TopSellers  []SellerStat  `json:"top_sellers"`
	TopClients  []ClientStat  `json:"top_clients"`
}

// Build folds the sales that fall inside [from, to] into a ReportData.
// It is pure: no storage, no clock. Ties in the top tables keep first-seen
// order thanks to the stable sort.
func Build(saleRows []sales.Sale, clientRows []clients.Client, from, to time.Time) ReportData {
	report := ReportData{
		From:        from,
		To:          to,
		TopProducts: []ProductStat{},
		TopSellers:  []SellerStat{},
		TopClients:  []ClientStat{},
	}

	type agg struct {
		name     string
		quantity int
		count    int
		revenue  int64
	}
	productAgg := map[string]*agg{}
	sellerAgg := map[string]*agg{}
	clientSaleCount := map[string]int{}
	var productOrder, sellerOrder []string

	for _, s := range saleRows {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		report.TotalSales++
		report.TotalUnits += s.Quantity
		report.TotalRevenue += s.TotalAmount

		switch s.PaymentMethod {
		case sales.PaymentCash:
			report.CashSales++
			report.CashRevenue += s.TotalAmount
		case sales.PaymentMoMo:
			report.MomoSales++
			report.MomoRevenue += s.TotalAmount
		}

		if s.ClientType == string(clients.ClientTypeRegular) {
			report.RegularSales++
			report.RegularRevenue += s.TotalAmount
		} else {
			report.RandomSales++
			report.RandomRevenue += s.TotalAmount
		}

		if s.PaymentStatus == sales.StatusPaid {
			report.PaidRevenue += s.TotalAmount
		} else {
			report.UnpaidRevenue += s.TotalAmount
		}

		p, ok := productAgg[s.ProductID]
		if !ok {
			p = &agg{name: s.ProductName}
			productAgg[s.ProductID] = p
			productOrder = append(productOrder, s.ProductID)
		}
		p.quantity += s.Quantity
		p.revenue += s.TotalAmount

		sl, ok := sellerAgg[s.SellerID]
		if !ok {
			sl = &agg{name: s.SellerName}
			sellerAgg[s.SellerID] = sl
			sellerOrder = append(sellerOrder, s.SellerID)
		}
		sl.count++
		sl.revenue += s.TotalAmount

		if s.ClientID != nil {
			clientSaleCount[*s.ClientID]++
		}
	}

	for _, id := range productOrder {
		a := productAgg[id]
		report.TopProducts = append(report.TopProducts, ProductStat{
			ProductID: id, Name: a.name, Quantity: a.quantity, Revenue: a.revenue,
		})
	}
	sort.SliceStable(report.TopProducts, func(i, j int) bool {
		return report.TopProducts[i].Revenue > report.TopProducts[j].Revenue
	})
	report.TopProducts = truncateProducts(report.TopProducts, topN)

	for _, id := range sellerOrder {
		a := sellerAgg[id]
		report.TopSellers = append(report.TopSellers, SellerStat{
			SellerID: id, Name: a.name, Count: a.count, Revenue: a.revenue,
		})
	}
	sort.SliceStable(report.TopSellers, func(i, j int) bool {
		return report.TopSellers[i].Revenue > report.TopSellers[j].Revenue
	})
	report.TopSellers = truncateSellers(report.TopSellers, topN)

	for _, c := range clientRows {
		if c.TotalPurchases <= 0 {
			continue
		}
		report.TopClients = append(report.TopClients, ClientStat{
			ClientID:   c.ID,
			Name:       c.Name,
			SalesCount: clientSaleCount[c.ID],
			Revenue:    c.TotalPurchases,
		})
	}
	sort.SliceStable(report.TopClients, func(i, j int) bool {
		return report.TopClients[i].Revenue > report.TopClients[j].Revenue
	})
	if len(report.TopClients) > topN {
		report.TopClients = report.TopClients[:topN]
	}

	return report
}

func truncateProducts(in []ProductStat, n int) []ProductStat {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func truncateSellers(in []SellerStat, n int) []SellerStat {
	if len(in) > n {
		return in[:n]
	}
	return in
}

package catalog

import (
	"time"
)

// Category enumerates the product lines the factory produces.
type Category string

const (
	CategoryLiquidSoap   Category = "LIQUID_SOAP"
	CategoryHandwash     Category = "HANDWASH"
	CategoryTilesCleaner Category = "TILES_CLEANER"
)

// SizeUnit is the measurement unit of a product's container size.
type SizeUnit string

const (
	SizeUnitLiter      SizeUnit = "L"
	SizeUnitMilliliter SizeUnit = "ml"
)

// SaleUnit is the physical packaging a product is sold in.
type SaleUnit string

const (
	SaleUnitBottle   SaleUnit = "bottle"
	SaleUnitJerryCan SaleUnit = "jerry_can"
	SaleUnitBox      SaleUnit = "box"
)

// StockStatus classifies a product's stock level against its reorder
// threshold.
type StockStatus string

const (
	StockStatusLow    StockStatus = "LOW"
	StockStatusMedium StockStatus = "MEDIUM"
	StockStatusGood   StockStatus = "GOOD"
)

// Product is a catalog entry. Prices are whole RWF; stock counts units of
// the product's sale packaging. Stock is only mutated through the inventory
// and sales rules, never through catalog updates.
type Product struct {
	ID           string    `json:"id"`
	Category     Category  `json:"category"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Size         float64   `json:"size"`
	SizeUnit     SizeUnit  `json:"size_unit"`
	Unit         SaleUnit  `json:"unit"`
	ItemsPerBox  *int      `json:"items_per_box,omitempty"`
	RegularPrice int64     `json:"regular_price"`
	RandomPrice  int64     `json:"random_price"`
	Stock        int       `json:"stock"`
	MinStock     int       `json:"min_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Classify returns the stock status for a stock level against a reorder
// threshold. Boundaries: stock == minStock is LOW, stock == 2*minStock is
// MEDIUM.
func Classify(stock, minStock int) StockStatus {
	switch {
	case stock <= minStock:
		return StockStatusLow
	case stock <= 2*minStock:
		return StockStatusMedium
	default:
		return StockStatusGood
	}
}

// StockStatus classifies the product's current stock level.
func (p Product) StockStatus() StockStatus {
	return Classify(p.Stock, p.MinStock)
}

// PriceFor returns the unit price for a pricing tier. Regular clients get
// the negotiated regular price, walk-ins pay the random price.
func (p Product) PriceFor(clientType string) int64 {
	if clientType == "regular" {
		return p.RegularPrice
	}
	return p.RandomPrice
}

package catalog

// CreateProductRequest carries the fields needed to add a catalog entry.
// Initial stock may be zero; later changes go through stock adjustments.
type CreateProductRequest struct {
	Category     Category `json:"category" validate:"required,oneof=LIQUID_SOAP HANDWASH TILES_CLEANER"`
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=1000"`
	Size         float64  `json:"size" validate:"required,gt=0"`
	SizeUnit     SizeUnit `json:"size_unit" validate:"required,oneof=L ml"`
	Unit         SaleUnit `json:"unit" validate:"required,oneof=bottle jerry_can box"`
	ItemsPerBox  *int     `json:"items_per_box,omitempty" validate:"omitempty,gt=0"`
	RegularPrice int64    `json:"regular_price" validate:"required,gt=0"`
	RandomPrice  int64    `json:"random_price" validate:"required,gt=0"`
	Stock        int      `json:"stock" validate:"gte=0"`
	MinStock     int      `json:"min_stock" validate:"required,gt=0"`
}

// UpdateProductRequest updates catalog fields. Stock is deliberately absent:
// the only paths that move stock are the adjustment and sale rules.
type UpdateProductRequest struct {
	Category     *Category `json:"category,omitempty" validate:"omitempty,oneof=LIQUID_SOAP HANDWASH TILES_CLEANER"`
	Name         *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	Size         *float64  `json:"size,omitempty" validate:"omitempty,gt=0"`
	SizeUnit     *SizeUnit `json:"size_unit,omitempty" validate:"omitempty,oneof=L ml"`
	Unit         *SaleUnit `json:"unit,omitempty" validate:"omitempty,oneof=bottle jerry_can box"`
	ItemsPerBox  *int      `json:"items_per_box,omitempty" validate:"omitempty,gt=0"`
	RegularPrice *int64    `json:"regular_price,omitempty" validate:"omitempty,gt=0"`
	RandomPrice  *int64    `json:"random_price,omitempty" validate:"omitempty,gt=0"`
	MinStock     *int      `json:"min_stock,omitempty" validate:"omitempty,gt=0"`
}

// ListFilters narrows product listings.
type ListFilters struct {
	Search   string
	Category Category
	Status   StockStatus
	Limit    int
	Offset   int
}

// ProductView decorates a product with its classified stock status for
// listings and dashboards.
type ProductView struct {
	Product
	Status StockStatus `json:"status"`
}

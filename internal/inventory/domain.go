package inventory

import (
	"errors"
	"time"
)

// UpdateType enumerates stock movement kinds recorded in the audit trail.
type UpdateType string

const (
	// UpdateTypeRestock represents stock added to a product.
	UpdateTypeRestock UpdateType = "restock"
	// UpdateTypeSale represents the automatic decrement from a recorded sale.
	UpdateTypeSale UpdateType = "sale"
	// UpdateTypeAdjustment represents a manual removal or correction.
	UpdateTypeAdjustment UpdateType = "adjustment"
)

// StockUpdate is one append-only audit record per stock-affecting event.
// Quantity is always the positive magnitude; Type encodes the direction.
type StockUpdate struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name"`
	Type          UpdateType `json:"type"`
	Quantity      int        `json:"quantity"`
	PreviousStock int        `json:"previous_stock"`
	NewStock      int        `json:"new_stock"`
	Reason        string     `json:"reason,omitempty"`
	UserID        string     `json:"user_id"`
	UserName      string     `json:"user_name"`
	Date          time.Time  `json:"date"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AdjustmentInput describes a manual stock change. Delta is signed: positive
// restocks, negative removes.
type AdjustmentInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

// UpdatesFilter narrows the stock history listing.
type UpdatesFilter struct {
	ProductID string
	Type      UpdateType
	From      time.Time
	To        time.Time
	Limit     int
}

// ErrNegativeStock is returned when a removal exceeds the stock on hand.
// The product is left untouched.
var ErrNegativeStock = errors.New("inventory: negative stock not allowed")

// ErrInvalidQuantity indicates a zero delta.
var ErrInvalidQuantity = errors.New("inventory: delta must be non zero")

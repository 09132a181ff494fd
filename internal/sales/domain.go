package sales

import (
	"errors"
	"time"
)

// PaymentMethod enumerates how a sale was paid.
type PaymentMethod string

const (
	// PaymentCash is a cash payment.
	PaymentCash PaymentMethod = "Cash"
	// PaymentMoMo is a mobile-money payment.
	PaymentMoMo PaymentMethod = "MoMo"
)

// PaymentStatus tracks whether money was collected.
type PaymentStatus string

const (
	// StatusPaid means the sale is settled.
	StatusPaid PaymentStatus = "Paid"
	// StatusNotPaid means the sale is on credit.
	StatusNotPaid PaymentStatus = "Not Paid"
)

// Sale is one completed transaction. Product and client fields are
// denormalized snapshots taken at recording time so history survives
// later edits or deletions.
type Sale struct {
	ID              string        `json:"id"`
	ProductID       string        `json:"product_id"`
	ProductName     string        `json:"product_name"`
	ProductCategory string        `json:"product_category"`
	Quantity        int           `json:"quantity"`
	UnitPrice       int64         `json:"unit_price"`
	TotalAmount     int64         `json:"total_amount"`
	ClientID        *string       `json:"client_id,omitempty"`
	ClientName      string        `json:"client_name"`
	ClientType      string        `json:"client_type"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	SellerID        string        `json:"seller_id"`
	SellerName      string        `json:"seller_name"`
	Date            time.Time     `json:"date"`
	CreatedAt       time.Time     `json:"created_at"`
}

// RecordSaleInput is the request to record a sale. ClientID is optional:
// when absent the sale is a walk-in and ClientName/ClientType describe the
// buyer directly; when present both are resolved from the client row.
type RecordSaleInput struct {
	ProductID     string        `json:"product_id" validate:"required"`
	Quantity      int           `json:"quantity" validate:"required,gt=0"`
	ClientID      *string       `json:"client_id,omitempty"`
	ClientName    string        `json:"client_name,omitempty" validate:"omitempty,max=200"`
	ClientType    string        `json:"client_type,omitempty" validate:"omitempty,oneof=regular random"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=Cash MoMo"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,oneof=Paid 'Not Paid'"`
}

// ListFilters narrows the sales listing.
type ListFilters struct {
	From          time.Time
	To            time.Time
	SellerID      string
	PaymentStatus PaymentStatus
	Limit         int
	Offset        int
}

// ErrInsufficientStock is returned when the requested quantity exceeds the
// stock on hand. The whole transaction rolls back and nothing changes.
var ErrInsufficientStock = errors.New("sales: insufficient stock")

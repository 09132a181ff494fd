package clients

import "time"

// ClientType decides which product price tier applies to a sale.
type ClientType string

const (
	// ClientTypeRegular gets the negotiated regular price.
	ClientTypeRegular ClientType = "regular"
	// ClientTypeRandom is a walk-in charged the random price.
	ClientTypeRandom ClientType = "random"
)

// Client is a buyer the factory tracks. TotalPurchases and LastPurchaseDate
// are rollups maintained by the sale-recording rule only; the update path
// never touches them.
type Client struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Phone            *string    `json:"phone,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Type             ClientType `json:"type"`
	TotalPurchases   int64      `json:"total_purchases"`
	LastPurchaseDate *time.Time `json:"last_purchase_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateClientRequest registers a client.
type CreateClientRequest struct {
	Name  string     `json:"name" validate:"required,max=200"`
	Phone *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email *string    `json:"email,omitempty" validate:"omitempty,email"`
	Type  ClientType `json:"type" validate:"required,oneof=regular random"`
}

// UpdateClientRequest edits client contact details and pricing tier.
type UpdateClientRequest struct {
	Name  *string     `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone *string     `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email *string     `json:"email,omitempty" validate:"omitempty,email"`
	Type  *ClientType `json:"type,omitempty" validate:"omitempty,oneof=regular random"`
}

// ListFilters narrows client listings.
type ListFilters struct {
	Search string
	Type   ClientType
	Limit  int
	Offset int
}

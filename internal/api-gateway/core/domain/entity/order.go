package entity

import "time"

type LineItem struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	ProductType string `json:"product_type,omitempty"`
}

type Order struct {
	ID          ID         `json:"id"`
	OrderNumber ID         `json:"order_number"`
	CreatedAt   string     `json:"created_at"`
	LineItems   []LineItem `json:"line_items"`
}

// OrderList mirrors the platform's `{"orders": [...]}` envelope.
type OrderList struct {
	Orders []Order `json:"orders"`
}

// CreatedDate renders CreatedAt as a calendar date, falling back to the raw
// value when the platform sent something that is not RFC3339.
func (o Order) CreatedDate() string {
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return o.CreatedAt
	}
	return t.Format("2006-01-02")
}

package entity

// Customer only carries the identifier: searches request `fields=id`.
type Customer struct {
	ID ID `json:"id"`
}

// CustomerList mirrors the platform's `{"customers": [...]}` envelope.
type CustomerList struct {
	Customers []Customer `json:"customers"`
}

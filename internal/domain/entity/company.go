package entity

import "time"

// Company represents an organisation/tenant of the system.
type Company struct {
	ID        string
	Name      string
	VATNumber string // 10-digit SARS VAT registration number
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

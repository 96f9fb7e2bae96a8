package domain

import "time"

// Company is a customer organization owning equipment and tickets.
type Company struct {
	ID        string
	Name      string
	Country   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Contact is a person reachable at a company.
type Contact struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Position  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

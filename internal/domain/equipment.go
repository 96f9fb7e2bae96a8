package domain

import "time"

// EquipmentModel identifies a product line that tickets and RMAs refer to.
type EquipmentModel struct {
	ID        string
	ModelCode string
	Name      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

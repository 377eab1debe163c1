package domain

import "time"

// Partner types
const (
	TypeSupplier    = "Supplier"
	TypeDistributor = "Distributor"
	TypeHealthcare  = "Healthcare"
	TypeTechnology  = "Technology"
	TypeOther       = "Other"
)

// Partner statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Partner is a business partner shown on the marketing site
type Partner struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Type          string    `json:"type" gorm:"not null;default:'Other'"`
	Logo          string    `json:"logo"`
	Website       string    `json:"website"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status" gorm:"not null;default:'Active';index"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	Order         int       `json:"order" gorm:"column:display_order;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Partner) TableName() string {
	return "partners"
}

// ValidType reports whether t is a known partner type
func ValidType(t string) bool {
	switch t {
	case TypeSupplier, TypeDistributor, TypeHealthcare, TypeTechnology, TypeOther:
		return true
	}
	return false
}

// Filter narrows partner listings
type Filter struct {
	Status string
	Type   string
}

// PartnerRepository defines the contract for partner data access
type PartnerRepository interface {
	Create(partner *Partner) error
	FindByID(id uint) (*Partner, error)
	// FindAll returns partners ordered by display order
	FindAll(filter Filter) ([]Partner, error)
	Update(partner *Partner) error
	Delete(id uint) error
	CountByStatus(status string) (int64, error)
}

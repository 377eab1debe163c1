package domain

import "time"

// Branch statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// DefaultOpeningHours is applied when a branch is created without hours
const DefaultOpeningHours = "8:00 AM - 8:00 PM"

// Branch represents a pharmacy location
type Branch struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Location     string    `json:"location"`
	Manager      string    `json:"manager"`
	ManagerID    uint      `json:"manager_id"`
	Status       string    `json:"status" gorm:"not null;default:'Active';index"`
	Contact      string    `json:"contact"`
	Email        string    `json:"email"`
	Street       string    `json:"street"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	OpeningHours string    `json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Branch) TableName() string {
	return "branches"
}

// Filter narrows branch listings
type Filter struct {
	Status string
	Search string
}

// BranchRepository defines the contract for branch data access
type BranchRepository interface {
	Create(branch *Branch) error
	FindByID(id uint) (*Branch, error)
	FindAll(filter Filter) ([]Branch, error)
	Update(branch *Branch) error
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

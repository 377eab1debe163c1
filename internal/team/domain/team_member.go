package domain

import "time"

// Team member statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// TeamMember is a staff profile shown on the marketing site
type TeamMember struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Role       string    `json:"role" gorm:"not null"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Image      string    `json:"image"`
	Bio        string    `json:"bio"`
	Status     string    `json:"status" gorm:"not null;default:'Active';index"`
	LinkedIn   string    `json:"linkedin"`
	Twitter    string    `json:"twitter"`
	Order      int       `json:"order" gorm:"column:display_order;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (TeamMember) TableName() string {
	return "team_members"
}

// Filter narrows team member listings
type Filter struct {
	Status     string
	Department string
}

// TeamRepository defines the contract for team member data access
type TeamRepository interface {
	Create(member *TeamMember) error
	FindByID(id uint) (*TeamMember, error)
	// FindAll returns members ordered by display order
	FindAll(filter Filter) ([]TeamMember, error)
	Update(member *TeamMember) error
	Delete(id uint) error
	CountByStatus(status string) (int64, error)
	// Departments returns the distinct non-empty department names
	Departments() ([]string, error)
}

package domain

import "time"

// Employment types
const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
)

// Posting statuses
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Career is a job posting
type Career struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Title             string     `json:"title" gorm:"not null"`
	Department        string     `json:"department"`
	Location          string     `json:"location"`
	Type              string     `json:"type" gorm:"not null;default:'Full-time'"`
	Description       string     `json:"description"`
	Requirements      string     `json:"requirements"`
	Responsibilities  string     `json:"responsibilities"`
	Salary            string     `json:"salary"`
	Benefits          string     `json:"benefits"`
	PostedDate        time.Time  `json:"posted_date"`
	ClosingDate       *time.Time `json:"closing_date,omitempty"`
	Status            string     `json:"status" gorm:"not null;default:'Open';index"`
	ApplicationsCount int        `json:"applications_count" gorm:"default:0"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Career) TableName() string {
	return "careers"
}

// ValidType reports whether t is a known employment type
func ValidType(t string) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return true
	}
	return false
}

// CloseIfPast flips an open posting to Closed once its closing date has
// passed. Returns true when the status changed; callers persist the flip.
func (c *Career) CloseIfPast(now time.Time) bool {
	if c.Status == StatusOpen && c.ClosingDate != nil && c.ClosingDate.Before(now) {
		c.Status = StatusClosed
		return true
	}
	return false
}

// Filter narrows career listings
type Filter struct {
	Status     string
	Department string
	Type       string
}

// CareerRepository defines the contract for career data access
type CareerRepository interface {
	Create(career *Career) error
	FindByID(id uint) (*Career, error)
	FindAll(filter Filter) ([]Career, error)
	Update(career *Career) error
	Delete(id uint) error
	CountByStatus(status string) (int64, error)
}

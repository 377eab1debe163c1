package domain

import (
	"time"

	"gorm.io/gorm"
)

// Account statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User represents a staff member
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // Never expose password in JSON
	Role      string         `json:"role" gorm:"not null;default:'Staff'"`
	BranchID  uint           `json:"branch_id" gorm:"index"`
	Status    string         `json:"status" gorm:"not null;default:'Active'"`
	Phone     string         `json:"phone"`
	Avatar    string         `json:"avatar"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account may log in
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Filter narrows user listings
type Filter struct {
	Role     string
	Status   string
	BranchID uint
	Search   string
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByEmail(email string) (*User, error)
	FindAll(filter Filter) ([]User, error)
	Update(user *User) error
	UpdatePassword(id uint, hash string) error
	UpdateLastLogin(id uint, at time.Time) error
	Delete(id uint) error
	CountByRole(role string) (int64, error)
	CountByBranch(branchID uint) (int64, error)
}

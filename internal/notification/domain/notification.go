package domain

import (
	"time"

	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// Notification types
const (
	TypeLowStock   = "low_stock"
	TypeNewOrder   = "new_order"
	TypeUserAction = "user_action"
	TypeSystem     = "system"
	TypeGeneral    = "general"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Audiences a notification can target
const (
	ForAdmin   = "Admin"
	ForManager = "Manager"
	ForAll     = "All"
)

// Notification is an alert record. Product, branch and manager names are
// denormalized snapshots taken at creation time; later changes to the
// source entities do not update them.
type Notification struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Type         string     `json:"type" gorm:"not null;index"`
	Title        string     `json:"title" gorm:"not null"`
	Message      string     `json:"message" gorm:"not null"`
	ProductID    uint       `json:"product_id,omitempty"`
	ProductName  string     `json:"product_name,omitempty"`
	BranchID     uint       `json:"branch_id,omitempty"`
	BranchName   string     `json:"branch_name,omitempty"`
	ManagerID    uint       `json:"manager_id,omitempty" gorm:"index"`
	ManagerName  string     `json:"manager_name,omitempty"`
	CurrentStock int        `json:"current_stock"`
	Read         bool       `json:"read" gorm:"not null;default:false;index"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	ReadBy       uint       `json:"read_by,omitempty"`
	Priority     string     `json:"priority" gorm:"not null;default:'medium'"`
	ForRole      string     `json:"for_role" gorm:"not null;default:'Admin';index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}

// Scope is the audience a caller is allowed to see. The same rule drives
// both the in-memory predicate and the repository's SQL filter.
type Scope struct {
	Role   string
	UserID uint
}

// ScopeFor builds the visibility scope for a principal
func ScopeFor(role string, userID uint) Scope {
	return Scope{Role: role, UserID: userID}
}

// Matches reports whether a notification is visible within the scope:
// an Admin sees Admin and All; a Manager sees Manager, All and anything
// they raised themselves; everyone else sees only All.
func (s Scope) Matches(n *Notification) bool {
	switch s.Role {
	case auth.RoleAdmin:
		return n.ForRole == ForAdmin || n.ForRole == ForAll
	case auth.RoleManager:
		return n.ForRole == ForManager || n.ForRole == ForAll || n.ManagerID == s.UserID
	default:
		return n.ForRole == ForAll
	}
}

// ListFilter narrows notification listings
type ListFilter struct {
	Read  *bool
	Limit int
}

// ListResult is a page of notifications plus the unread count in scope
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

// NotificationRepository defines the contract for notification data access
type NotificationRepository interface {
	Create(n *Notification) error
	FindByID(id uint) (*Notification, error)
	// FindVisible returns notifications in scope, newest first
	FindVisible(scope Scope, filter ListFilter) ([]Notification, error)
	CountUnread(scope Scope) (int64, error)
	// MarkRead stamps read/readAt/readBy unconditionally; re-marking an
	// already read notification just re-stamps it
	MarkRead(id uint, by uint, at time.Time) error
	MarkAllRead(scope Scope, by uint, at time.Time) error
	Delete(id uint) error
}

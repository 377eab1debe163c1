package domain

import "time"

// Well-known setting keys
const (
	KeyPortalAccessCode = "portalAccessCode"
	KeyCompanyName      = "companyName"
	KeyCompanyEmail     = "companyEmail"
	KeyCompanyPhone     = "companyPhone"
)

// MinPortalCodeLength is the minimum accepted portal access code length
const MinPortalCodeLength = 4

// Setting is a key/value configuration record with an audit trail of who
// last changed it
type Setting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"uniqueIndex;not null"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedBy   uint      `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Setting) TableName() string {
	return "app_settings"
}

// SettingRepository defines the contract for settings data access
type SettingRepository interface {
	// GetValue returns the raw value for a key
	GetValue(key string) (string, error)
	Get(key string) (*Setting, error)
	List() ([]Setting, error)
	// Set upserts a key, stamping the actor. Description is only written
	// when non-empty.
	Set(key, value, description string, updatedBy uint) (*Setting, error)
	// SeedDefaults inserts missing well-known keys without touching
	// existing values
	SeedDefaults(defaults map[string]string) error
}

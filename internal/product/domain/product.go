package domain

import (
	"time"

	"gorm.io/gorm"
)

// Stock status values. Status is derived from stock and threshold,
// never set directly by clients.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// DefaultLowStockThreshold applies when a product is created without one
const DefaultLowStockThreshold = 50

// Product represents a pharmacy product
type Product struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"not null"`
	Description       string         `json:"description"`
	Category          string         `json:"category" gorm:"not null;index"`
	Price             float64        `json:"price" gorm:"not null"`
	Stock             int            `json:"stock" gorm:"not null;default:0"`
	LowStockThreshold int            `json:"low_stock_threshold" gorm:"not null;default:50"`
	Status            string         `json:"status" gorm:"not null;default:'In Stock'"`
	BranchID          uint           `json:"branch_id" gorm:"index"`
	Image             string         `json:"image"`
	ImagePublicID     string         `json:"image_public_id"`
	SKU               string         `json:"sku"`
	Manufacturer      string         `json:"manufacturer"`
	ExpiryDate        *time.Time     `json:"expiry_date,omitempty"`
	Featured          bool           `json:"featured" gorm:"default:false"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// DeriveStatus computes the stock status from a stock level and a
// per-product threshold. Every mutation path goes through this; the
// invariant is that a persisted product always satisfies
// status == DeriveStatus(stock, threshold).
func DeriveStatus(stock, threshold int) string {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Refresh recomputes the derived status in place
func (p *Product) Refresh() {
	p.Status = DeriveStatus(p.Stock, p.LowStockThreshold)
}

// Filter narrows product listings
type Filter struct {
	Status   string
	Category string
	BranchID uint
	Featured bool
	Search   string
	Limit    int
	Offset   int

	// Public marketing listing: active products that are not out of
	// stock, featured first
	PublicOnly bool
}

// StatusCounts is the admin dashboard stock breakdown
type StatusCounts struct {
	Total      int64 `json:"total"`
	InStock    int64 `json:"in_stock"`
	LowStock   int64 `json:"low_stock"`
	OutOfStock int64 `json:"out_of_stock"`
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(filter Filter) ([]Product, error)
	Update(product *Product) error
	// UpdateStock writes stock and derived status in one row update
	UpdateStock(id uint, stock int, status string) error
	Delete(id uint) error
	Count() (int64, error)
	// CountActive counts products shown in the public catalog
	CountActive() (int64, error)
	CountByBranch(branchID uint) (int64, error)
	StatusCounts() (*StatusCounts, error)
	Categories() ([]string, error)
}

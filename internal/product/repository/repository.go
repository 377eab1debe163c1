package repository

import (
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(filter domain.Filter) ([]domain.Product, error) {
	q := r.db.Model(&domain.Product{})

	if filter.PublicOnly {
		q = q.Where("is_active = ?", true).
			Where("status <> ?", domain.StatusOutOfStock).
			Order("featured DESC, created_at DESC")
	} else {
		q = q.Where("is_active = ?", true).Order("created_at DESC")
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.BranchID != 0 {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Featured {
		q = q.Where("featured = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR category ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var products []domain.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) UpdateStock(id uint, stock int, status string) error {
	return r.db.Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"stock": stock, "status": status}).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountByBranch(branchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).
		Where("is_active = ? AND branch_id = ?", true, branchID).
		Count(&count).Error
	return count, err
}

func (r *GormProductRepository) StatusCounts() (*domain.StatusCounts, error) {
	counts := &domain.StatusCounts{}

	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&domain.Product{}).
		Select("status, count(*) as n").
		Where("is_active = ?", true).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts.Total += rw.N
		switch rw.Status {
		case domain.StatusInStock:
			counts.InStock = rw.N
		case domain.StatusLowStock:
			counts.LowStock = rw.N
		case domain.StatusOutOfStock:
			counts.OutOfStock = rw.N
		}
	}
	return counts, nil
}

func (r *GormProductRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&domain.Product{}).
		Where("is_active = ?", true).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

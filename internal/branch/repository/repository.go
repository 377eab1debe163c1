package repository

import (
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/branch/domain"
)

type GormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func (r *GormBranchRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Branch{})
}

func (r *GormBranchRepository) Create(branch *domain.Branch) error {
	return r.db.Create(branch).Error
}

func (r *GormBranchRepository) FindByID(id uint) (*domain.Branch, error) {
	var branch domain.Branch
	err := r.db.First(&branch, id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *GormBranchRepository) FindAll(filter domain.Filter) ([]domain.Branch, error) {
	q := r.db.Model(&domain.Branch{}).Order("name ASC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR location ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}

	var branches []domain.Branch
	err := q.Find(&branches).Error
	return branches, err
}

func (r *GormBranchRepository) Update(branch *domain.Branch) error {
	return r.db.Save(branch).Error
}

func (r *GormBranchRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Branch{}, id).Error
}

func (r *GormBranchRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Branch{}).Count(&count).Error
	return count, err
}

func (r *GormBranchRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Branch{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

package repository

import (
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/career/domain"
)

type GormCareerRepository struct {
	db *gorm.DB
}

func NewGormCareerRepository(db *gorm.DB) *GormCareerRepository {
	return &GormCareerRepository{db: db}
}

func (r *GormCareerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Career{})
}

func (r *GormCareerRepository) Create(career *domain.Career) error {
	return r.db.Create(career).Error
}

func (r *GormCareerRepository) FindByID(id uint) (*domain.Career, error) {
	var career domain.Career
	err := r.db.First(&career, id).Error
	if err != nil {
		return nil, err
	}
	return &career, nil
}

func (r *GormCareerRepository) FindAll(filter domain.Filter) ([]domain.Career, error) {
	q := r.db.Model(&domain.Career{}).Order("posted_date DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var careers []domain.Career
	err := q.Find(&careers).Error
	return careers, err
}

func (r *GormCareerRepository) Update(career *domain.Career) error {
	return r.db.Save(career).Error
}

func (r *GormCareerRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Career{}, id).Error
}

func (r *GormCareerRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Career{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

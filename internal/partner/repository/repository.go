package repository

import (
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/partner/domain"
)

type GormPartnerRepository struct {
	db *gorm.DB
}

func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

func (r *GormPartnerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Partner{})
}

func (r *GormPartnerRepository) Create(partner *domain.Partner) error {
	return r.db.Create(partner).Error
}

func (r *GormPartnerRepository) FindByID(id uint) (*domain.Partner, error) {
	var partner domain.Partner
	err := r.db.First(&partner, id).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *GormPartnerRepository) FindAll(filter domain.Filter) ([]domain.Partner, error) {
	q := r.db.Model(&domain.Partner{}).Order("display_order ASC, name ASC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var partners []domain.Partner
	err := q.Find(&partners).Error
	return partners, err
}

func (r *GormPartnerRepository) Update(partner *domain.Partner) error {
	return r.db.Save(partner).Error
}

func (r *GormPartnerRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Partner{}, id).Error
}

func (r *GormPartnerRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Partner{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

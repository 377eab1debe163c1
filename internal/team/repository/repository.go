package repository

import (
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/team/domain"
)

type GormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.TeamMember{})
}

func (r *GormTeamRepository) Create(member *domain.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *GormTeamRepository) FindByID(id uint) (*domain.TeamMember, error) {
	var member domain.TeamMember
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *GormTeamRepository) FindAll(filter domain.Filter) ([]domain.TeamMember, error) {
	q := r.db.Model(&domain.TeamMember{}).Order("display_order ASC, name ASC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}

	var members []domain.TeamMember
	err := q.Find(&members).Error
	return members, err
}

func (r *GormTeamRepository) Update(member *domain.TeamMember) error {
	return r.db.Save(member).Error
}

func (r *GormTeamRepository) Delete(id uint) error {
	return r.db.Delete(&domain.TeamMember{}, id).Error
}

func (r *GormTeamRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.TeamMember{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *GormTeamRepository) Departments() ([]string, error) {
	var departments []string
	err := r.db.Model(&domain.TeamMember{}).
		Distinct("department").
		Where("department <> ''").
		Order("department ASC").
		Pluck("department", &departments).Error
	return departments, err
}

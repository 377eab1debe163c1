package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

func (r *GormUserRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindAll(filter domain.Filter) ([]domain.User, error) {
	q := r.db.Model(&domain.User{}).Order("created_at DESC")

	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BranchID != 0 {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var users []domain.User
	err := q.Find(&users).Error
	return users, err
}

func (r *GormUserRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

func (r *GormUserRepository) UpdatePassword(id uint, hash string) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *GormUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Delete(&domain.User{}, id).Error
}

func (r *GormUserRepository) CountByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) CountByBranch(branchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Where("branch_id = ?", branchID).Count(&count).Error
	return count, err
}

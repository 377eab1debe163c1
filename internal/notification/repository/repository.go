package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Notification{})
}

func (r *GormNotificationRepository) Create(n *domain.Notification) error {
	return r.db.Create(n).Error
}

func (r *GormNotificationRepository) FindByID(id uint) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// scoped translates domain.Scope.Matches into SQL. Keep the two in sync.
func (r *GormNotificationRepository) scoped(scope domain.Scope) *gorm.DB {
	q := r.db.Model(&domain.Notification{})
	switch scope.Role {
	case auth.RoleAdmin:
		return q.Where("for_role IN ?", []string{domain.ForAdmin, domain.ForAll})
	case auth.RoleManager:
		return q.Where("for_role IN ? OR manager_id = ?",
			[]string{domain.ForManager, domain.ForAll}, scope.UserID)
	default:
		return q.Where("for_role = ?", domain.ForAll)
	}
}

func (r *GormNotificationRepository) FindVisible(scope domain.Scope, filter domain.ListFilter) ([]domain.Notification, error) {
	q := r.scoped(scope).Order("created_at DESC")

	if filter.Read != nil {
		q = q.Where("read = ?", *filter.Read)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var notifications []domain.Notification
	err := q.Find(&notifications).Error
	return notifications, err
}

func (r *GormNotificationRepository) CountUnread(scope domain.Scope) (int64, error) {
	var count int64
	err := r.scoped(scope).Where("read = ?", false).Count(&count).Error
	return count, err
}

func (r *GormNotificationRepository) MarkRead(id uint, by uint, at time.Time) error {
	return r.db.Model(&domain.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "read_at": at, "read_by": by}).Error
}

func (r *GormNotificationRepository) MarkAllRead(scope domain.Scope, by uint, at time.Time) error {
	return r.scoped(scope).Where("read = ?", false).
		Updates(map[string]interface{}{"read": true, "read_at": at, "read_by": by}).Error
}

func (r *GormNotificationRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Notification{}, id).Error
}

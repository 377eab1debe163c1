package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kipharma/pharmacy-platform/internal/settings/domain"
)

type GormSettingRepository struct {
	db *gorm.DB
}

func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

func (r *GormSettingRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Setting{})
}

func (r *GormSettingRepository) GetValue(key string) (string, error) {
	setting, err := r.Get(key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *GormSettingRepository) Get(key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *GormSettingRepository) List() ([]domain.Setting, error) {
	var settings []domain.Setting
	err := r.db.Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *GormSettingRepository) Set(key, value, description string, updatedBy uint) (*domain.Setting, error) {
	setting, err := r.Get(key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		setting = &domain.Setting{Key: key}
	}

	setting.Value = value
	setting.UpdatedBy = updatedBy
	if description != "" {
		setting.Description = description
	}

	if err := r.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *GormSettingRepository) SeedDefaults(defaults map[string]string) error {
	for key, value := range defaults {
		setting := domain.Setting{Key: key, Value: value}
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&setting).Error
		if err != nil {
			return err
		}
	}
	return nil
}

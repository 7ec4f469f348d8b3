// Package setting provides CRUD operations on the site_settings table.
package setting

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/labrocante/brocante/internal/db/models"
)

var (
	// ErrSettingNotFound is returned when no row has the requested key.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when a key is empty.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when creating a key that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// byKey matches the key column, which is a reserved word in MySQL.
func byKey(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

// Get retrieves a setting by its key.
func Get(db *gorm.DB, key string) (*models.SiteSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.SiteSetting

	result := db.Where(byKey(key)).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves every setting ordered by grouping label, then key.
func GetAll(db *gorm.DB) ([]models.SiteSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.SiteSetting

	result := db.Order("category").Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Create inserts a new setting. Type defaults to text.
func Create(db *gorm.DB, setting *models.SiteSetting) error {
	if db == nil {
		return ErrDBNil
	}

	if setting.Key == "" {
		return ErrSettingKeyEmpty
	}

	if _, err := Get(db, setting.Key); err == nil {
		return ErrSettingAlreadyExists
	} else if !errors.Is(err, ErrSettingNotFound) {
		return err
	}

	if setting.Type == "" {
		setting.Type = models.SettingTypeText
	}

	return db.Create(setting).Error
}

// Ensure inserts setting unless its key exists. Existing values are never touched.
func Ensure(db *gorm.DB, setting models.SiteSetting) error {
	if db == nil {
		return ErrDBNil
	}

	if setting.Key == "" {
		return ErrSettingKeyEmpty
	}

	if setting.Type == "" {
		setting.Type = models.SettingTypeText
	}

	return db.Where(byKey(setting.Key)).FirstOrCreate(&setting).Error
}

// UpdateValue sets the value of an existing key and refreshes updated_at.
func UpdateValue(db *gorm.DB, key, value string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.Model(&models.SiteSetting{}).
		Where(byKey(key)).
		Updates(map[string]any{"value": value, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// Delete deletes a setting by key.
func Delete(db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.Where(byKey(key)).Delete(&models.SiteSetting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

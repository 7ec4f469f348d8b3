package models

import "time"

// SettingType tells how a SiteSetting value is interpreted.
type SettingType string

const (
	// SettingTypeText is plain text.
	SettingTypeText SettingType = "text"
	// SettingTypeHTML is trusted markup edited by the admin.
	SettingTypeHTML SettingType = "html"
	// SettingTypeImage holds the public URL of an uploaded image.
	SettingTypeImage SettingType = "image"
	// SettingTypeJSON is parsed when the settings are loaded.
	SettingTypeJSON SettingType = "json"
)

// SiteSetting is one editable piece of site content or configuration.
type SiteSetting struct {
	ID uint64 `gorm:"primaryKey"`
	// Key is unique, e.g. contact_email.
	Key string `gorm:"column:key;size:100;uniqueIndex;not null"`
	// Value is stored as text whatever the Type.
	Value string `gorm:"type:text"`
	// Type is one of text, html, image or json.
	Type SettingType `gorm:"type:varchar(10);not null;default:'text'"`
	// Category is the grouping label shown in the admin.
	Category    string `gorm:"size:50;not null;default:'general'"`
	Description string `gorm:"size:255"`
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the SiteSetting model.
func (SiteSetting) TableName() string {
	return "site_settings"
}

// Package settingrepo reads versioned settlement configuration out of the
// app_settings table and assembles it into a typed tariff snapshot.
// Missing or malformed keys degrade to that component's zero contribution
// instead of failing the settlement.
package settingrepo

// SettingDTO represents one version of a configuration value.
// Values are stored as JSON; readers take the highest version per key.
type SettingDTO struct {
	Key     string `gorm:"type:varchar(64);primaryKey"`
	Version int    `gorm:"type:int;primaryKey"`
	Value   string `gorm:"type:jsonb;not null"`
}

// TableName specifies the database table name for configuration values.
// Overrides GORM's default naming convention to use "app_settings" instead of "setting_dtos".
func (SettingDTO) TableName() string {
	return "app_settings"
}

package models

import "gorm.io/gorm"

// Tag is a staff-curated label attached to businesses and agencies.
type Tag struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Icon string `json:"icon"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a persisted message for an owner, written when staff
// approve or reject one of their records.
type Notification struct {
	gorm.Model
	UserID uint       `json:"userID" gorm:"index;not null"`
	Kind   string     `json:"kind" gorm:"size:64;index"` // business.approved, agency.rejected, tour.approved, ...
	Title  string     `json:"title"`
	Body   string     `json:"body" gorm:"type:text"`
	ReadAt *time.Time `json:"readAt"`
}

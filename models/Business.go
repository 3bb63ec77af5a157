package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Moderation statuses shared by businesses, agencies and tours.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Business is a food or accommodation establishment submitted by its owner
// and published only after staff approval.
type Business struct {
	gorm.Model
	OwnerID       uint           `json:"ownerID" gorm:"uniqueIndex;not null"`
	Owner         User           `json:"-" gorm:"foreignKey:OwnerID"`
	Segment       string         `json:"segment" gorm:"type:varchar(20);not null;index"` // food, accommodation
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Website       string         `json:"website"`
	Images        datatypes.JSON `json:"images"`
	Status        string         `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, approved, rejected
	StatusDetails *string        `json:"statusDetails"`                                          // set only while rejected
	Tags          []Tag          `json:"tags" gorm:"many2many:business_tags"`
}

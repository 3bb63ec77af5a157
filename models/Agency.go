package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Agency types. Only approved agencies of type guide may operate tours.
const (
	AgencyTypeAgency = "agency"
	AgencyTypeGuide  = "guide"
)

// Agency is a tour agency or an independent guide record, owned by a single
// user and subject to the same moderation lifecycle as Business.
type Agency struct {
	gorm.Model
	OwnerID       uint           `json:"ownerID" gorm:"uniqueIndex;not null"`
	Owner         User           `json:"-" gorm:"foreignKey:OwnerID"`
	Type          string         `json:"type" gorm:"type:varchar(20);not null;index"` // agency, guide
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
	Tags          []Tag          `json:"tags" gorm:"many2many:agency_tags"`
}

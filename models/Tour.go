package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tour is a scheduled outing operated by an approved guide agency, with an
// optional second guide. Tours go through the same moderation lifecycle as
// the directory entities; the operating guide can cancel but never approve.
type Tour struct {
	gorm.Model
	GuideID          uint           `json:"guideID" gorm:"not null;index"`
	Guide            Agency         `json:"guide" gorm:"foreignKey:GuideID"`
	AuxiliaryGuideID *uint          `json:"auxiliaryGuideID" gorm:"index"`
	AuxiliaryGuide   *Agency        `json:"auxiliaryGuide" gorm:"foreignKey:AuxiliaryGuideID"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description" gorm:"type:text"`
	MeetingPoint     string         `json:"meetingPoint"`
	Price            float64        `json:"price" gorm:"default:0"`
	Images           datatypes.JSON `json:"images"`
	DateTime         time.Time      `json:"dateTime" gorm:"not null"`
	RequestDate      int            `json:"requestDate"` // whole days between creation and DateTime, fixed at creation
	StayDays         int            `json:"stayDays" gorm:"default:1"`
	Status           string         `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, approved, rejected
	StatusDetails    *string        `json:"statusDetails"`                                          // set only while rejected
}

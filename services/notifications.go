package services

import (
	"fmt"
	"log"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"

	"gorm.io/gorm"
)

// NotificationService writes owner-facing notification rows when staff act
// on a record. Delivery is read-side only (the owner's inbox endpoint).
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (ns *NotificationService) notify(userID uint, kind, title, body string) {
	notification := models.Notification{UserID: userID, Kind: kind, Title: title, Body: body}
	if err := ns.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to store notification for user %d: %v", userID, err)
	}
}

// NotifyStatusChange tells the owner that staff moved their record to a new
// status. The rejection reason, when present, is surfaced verbatim.
func (ns *NotificationService) NotifyStatusChange(ownerID uint, resourceType, name, status string, details *string) {
	kind := fmt.Sprintf("%s.%s", resourceType, status)
	title := fmt.Sprintf("Your %s was %s", resourceType, status)
	body := fmt.Sprintf("%q is now %s.", name, status)
	if status == models.StatusRejected && details != nil {
		body = fmt.Sprintf("%q was rejected: %s", name, *details)
	}
	ns.notify(ownerID, kind, title, body)
}

package services

import (
	"errors"
	"strings"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Moderation lifecycle shared by businesses, agencies and tours:
// pending -> approved | rejected, both staff transitions reversible.
// Approving clears the rejection note; rejecting records one.

func CanApprove(status string) bool {
	return slices.Contains([]string{models.StatusPending, models.StatusRejected}, status)
}

func CanReject(status string) bool {
	return slices.Contains([]string{models.StatusPending, models.StatusApproved}, status)
}

// ResubmitBusiness re-arms moderation after an owner edit. A business edit
// always goes back to the queue, whatever the prior status.
func ResubmitBusiness(business *models.Business) {
	business.Status = models.StatusPending
	business.StatusDetails = nil
}

// ResubmitAgency re-arms moderation only when the agency was approved. An
// edit to a rejected agency keeps the rejected status and the reviewer's
// note; re-entry into the queue happens out-of-band.
func ResubmitAgency(agency *models.Agency) {
	if agency.Status == models.StatusApproved {
		agency.Status = models.StatusPending
		agency.StatusDetails = nil
	}
}

// applyStatus persists a status transition and its note in one transaction.
func applyStatus(db *gorm.DB, entity interface{}, status string, details *string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(entity).Updates(map[string]interface{}{
			"status":         status,
			"status_details": details,
		}).Error
	})
}

func checkReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", validation("a rejection reason is required")
	}
	return reason, nil
}

func ApproveBusiness(db *gorm.DB, role permissions.Role, id uint) (*models.Business, error) {
	if !permissions.Allows(role, permissions.ApproveBusinesses) {
		return nil, permissionDenied("role %s cannot approve businesses", role)
	}
	var business models.Business
	if err := db.First(&business, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanApprove(business.Status) {
		return nil, validation("cannot approve a business in status %s", business.Status)
	}
	business.Status = models.StatusApproved
	business.StatusDetails = nil
	if err := applyStatus(db, &business, models.StatusApproved, nil); err != nil {
		return nil, err
	}
	return &business, nil
}

func RejectBusiness(db *gorm.DB, role permissions.Role, id uint, reason string) (*models.Business, error) {
	if !permissions.Allows(role, permissions.RejectBusinesses) {
		return nil, permissionDenied("role %s cannot reject businesses", role)
	}
	reason, err := checkReason(reason)
	if err != nil {
		return nil, err
	}
	var business models.Business
	if err := db.First(&business, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanReject(business.Status) {
		return nil, validation("cannot reject a business in status %s", business.Status)
	}
	business.Status = models.StatusRejected
	business.StatusDetails = &reason
	if err := applyStatus(db, &business, models.StatusRejected, &reason); err != nil {
		return nil, err
	}
	return &business, nil
}

func ApproveAgency(db *gorm.DB, role permissions.Role, id uint) (*models.Agency, error) {
	if !permissions.Allows(role, permissions.ApproveAgencies) {
		return nil, permissionDenied("role %s cannot approve agencies", role)
	}
	var agency models.Agency
	if err := db.First(&agency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanApprove(agency.Status) {
		return nil, validation("cannot approve an agency in status %s", agency.Status)
	}
	agency.Status = models.StatusApproved
	agency.StatusDetails = nil
	if err := applyStatus(db, &agency, models.StatusApproved, nil); err != nil {
		return nil, err
	}
	return &agency, nil
}

func RejectAgency(db *gorm.DB, role permissions.Role, id uint, reason string) (*models.Agency, error) {
	if !permissions.Allows(role, permissions.RejectAgencies) {
		return nil, permissionDenied("role %s cannot reject agencies", role)
	}
	reason, err := checkReason(reason)
	if err != nil {
		return nil, err
	}
	var agency models.Agency
	if err := db.First(&agency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanReject(agency.Status) {
		return nil, validation("cannot reject an agency in status %s", agency.Status)
	}
	agency.Status = models.StatusRejected
	agency.StatusDetails = &reason
	if err := applyStatus(db, &agency, models.StatusRejected, &reason); err != nil {
		return nil, err
	}
	return &agency, nil
}

// Tour status writes are all gated by the approveTours action, both
// directions.

func ApproveTour(db *gorm.DB, role permissions.Role, id uint) (*models.Tour, error) {
	if !permissions.Allows(role, permissions.ApproveTours) {
		return nil, permissionDenied("role %s cannot approve tours", role)
	}
	var tour models.Tour
	if err := db.First(&tour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanApprove(tour.Status) {
		return nil, validation("cannot approve a tour in status %s", tour.Status)
	}
	tour.Status = models.StatusApproved
	tour.StatusDetails = nil
	if err := applyStatus(db, &tour, models.StatusApproved, nil); err != nil {
		return nil, err
	}
	return &tour, nil
}

func RejectTour(db *gorm.DB, role permissions.Role, id uint, reason string) (*models.Tour, error) {
	if !permissions.Allows(role, permissions.ApproveTours) {
		return nil, permissionDenied("role %s cannot reject tours", role)
	}
	reason, err := checkReason(reason)
	if err != nil {
		return nil, err
	}
	var tour models.Tour
	if err := db.First(&tour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanReject(tour.Status) {
		return nil, validation("cannot reject a tour in status %s", tour.Status)
	}
	tour.Status = models.StatusRejected
	tour.StatusDetails = &reason
	if err := applyStatus(db, &tour, models.StatusRejected, &reason); err != nil {
		return nil, err
	}
	return &tour, nil
}

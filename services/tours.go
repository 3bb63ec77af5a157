package services

import (
	"errors"
	"time"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"

	"gorm.io/gorm"
)

// CancelledByGuideReason is the fixed note written when the operating guide
// cancels a tour. Guides cannot supply their own cancellation text.
const CancelledByGuideReason = "Cancelado pelo guia"

type CreateTourInput struct {
	Title            string
	Description      string
	MeetingPoint     string
	Price            float64
	DateTime         time.Time
	StayDays         int
	AuxiliaryGuideID *uint
}

// TourUpdateInput carries every field a tour PATCH may mention. Which of
// them actually reach the record depends on who is editing: guides go
// through ApplyGuideEdit, which never looks at the status fields.
type TourUpdateInput struct {
	Title                *string
	Description          *string
	MeetingPoint         *string
	Price                *float64
	DateTime             *time.Time
	StayDays             *int
	AuxiliaryGuideID     *uint
	RemoveAuxiliaryGuide bool
	Status               *string
	StatusDetails        *string
}

// RequestDays is the whole-day gap between now and the tour date, clamped to
// zero for same-day or past dates. Computed once at creation, never on edit.
func RequestDays(now, dateTime time.Time) int {
	days := int(dateTime.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// CheckAuxiliaryGuide validates a second guide against the main one: it must
// be a different record, of type guide, and already approved. A nil aux with
// auxID set means the id did not resolve.
func CheckAuxiliaryGuide(guideID uint, auxID uint, aux *models.Agency) error {
	if auxID == guideID {
		return validation("auxiliary guide must differ from the main guide")
	}
	if aux == nil {
		return validation("auxiliary guide %d not found", auxID)
	}
	if aux.Type != models.AgencyTypeGuide {
		return validation("auxiliary guide must be an agency of type guide")
	}
	if aux.Status != models.StatusApproved {
		return validation("auxiliary guide is not approved")
	}
	return nil
}

// ApplyGuideEdit copies the fields a guide may change onto the tour. Status,
// status details and the derived request date are deliberately not part of
// the projection; a payload mentioning them is accepted and those fields are
// dropped, not rejected.
func ApplyGuideEdit(tour *models.Tour, input TourUpdateInput) {
	if input.Title != nil {
		tour.Title = *input.Title
	}
	if input.Description != nil {
		tour.Description = *input.Description
	}
	if input.MeetingPoint != nil {
		tour.MeetingPoint = *input.MeetingPoint
	}
	if input.Price != nil {
		tour.Price = *input.Price
	}
	if input.DateTime != nil {
		tour.DateTime = *input.DateTime
	}
	if input.StayDays != nil {
		tour.StayDays = *input.StayDays
	}
	if input.RemoveAuxiliaryGuide {
		tour.AuxiliaryGuideID = nil
	} else if input.AuxiliaryGuideID != nil {
		tour.AuxiliaryGuideID = input.AuxiliaryGuideID
	}
}

func loadAgency(db *gorm.DB, id uint) (*models.Agency, error) {
	var agency models.Agency
	if err := db.First(&agency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &agency, nil
}

// guidingAgency resolves the caller's own agency and enforces the scheduling
// precondition: only an approved agency of type guide operates tours, no
// matter what the permission table says.
func guidingAgency(db *gorm.DB, ownerID uint) (*models.Agency, error) {
	agency, err := FindOwnedAgency(db, ownerID)
	if err != nil {
		return nil, err
	}
	if agency == nil || agency.Status != models.StatusApproved {
		return nil, permissionDenied("agency not approved")
	}
	if agency.Type != models.AgencyTypeGuide {
		return nil, permissionDenied("only guide agencies operate tours")
	}
	return agency, nil
}

func CreateTour(db *gorm.DB, role permissions.Role, ownerID uint, input CreateTourInput) (*models.Tour, error) {
	if !permissions.Allows(role, permissions.CreateTours) {
		return nil, permissionDenied("role %s cannot create tours", role)
	}
	agency, err := guidingAgency(db, ownerID)
	if err != nil {
		return nil, err
	}

	tour := models.Tour{
		GuideID:      agency.ID,
		Title:        input.Title,
		Description:  input.Description,
		MeetingPoint: input.MeetingPoint,
		Price:        input.Price,
		DateTime:     input.DateTime,
		StayDays:     input.StayDays,
		RequestDate:  RequestDays(time.Now(), input.DateTime),
		Status:       models.StatusPending,
	}
	if tour.StayDays < 1 {
		tour.StayDays = 1
	}

	if input.AuxiliaryGuideID != nil {
		aux, err := loadAgency(db, *input.AuxiliaryGuideID)
		if err != nil {
			return nil, err
		}
		if err := CheckAuxiliaryGuide(agency.ID, *input.AuxiliaryGuideID, aux); err != nil {
			return nil, err
		}
		tour.AuxiliaryGuideID = input.AuxiliaryGuideID
	}

	if err := db.Create(&tour).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

// ownedTour loads a tour and checks it is operated by the caller's agency.
func ownedTour(db *gorm.DB, ownerID uint, tourID uint) (*models.Tour, *models.Agency, error) {
	agency, err := FindOwnedAgency(db, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if agency == nil {
		return nil, nil, permissionDenied("no agency for this account")
	}
	var tour models.Tour
	if err := db.First(&tour, tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if tour.GuideID != agency.ID {
		return nil, nil, permissionDenied("tour is operated by another agency")
	}
	return &tour, agency, nil
}

func UpdateTourAsGuide(db *gorm.DB, role permissions.Role, ownerID uint, tourID uint, input TourUpdateInput) (*models.Tour, error) {
	if !permissions.Allows(role, permissions.ManageOwnTours) {
		return nil, permissionDenied("role %s cannot manage tours", role)
	}
	tour, agency, err := ownedTour(db, ownerID, tourID)
	if err != nil {
		return nil, err
	}

	if !input.RemoveAuxiliaryGuide && input.AuxiliaryGuideID != nil {
		aux, err := loadAgency(db, *input.AuxiliaryGuideID)
		if err != nil {
			return nil, err
		}
		if err := CheckAuxiliaryGuide(agency.ID, *input.AuxiliaryGuideID, aux); err != nil {
			return nil, err
		}
	}

	ApplyGuideEdit(tour, input)
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(tour).Error
	}); err != nil {
		return nil, err
	}
	return tour, nil
}

func UpdateTourAsStaff(db *gorm.DB, role permissions.Role, tourID uint, input TourUpdateInput) (*models.Tour, error) {
	if !permissions.Allows(role, permissions.EditAnyTour) {
		return nil, permissionDenied("role %s cannot edit tours", role)
	}
	var tour models.Tour
	if err := db.First(&tour, tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.AuxiliaryGuideID != nil && !input.RemoveAuxiliaryGuide {
		aux, err := loadAgency(db, *input.AuxiliaryGuideID)
		if err != nil {
			return nil, err
		}
		if err := CheckAuxiliaryGuide(tour.GuideID, *input.AuxiliaryGuideID, aux); err != nil {
			return nil, err
		}
	}

	ApplyGuideEdit(&tour, input)

	// Status writes ride on the approveTours action and follow the same
	// transition table as the dedicated approve/reject endpoints.
	if input.Status != nil {
		if !permissions.Allows(role, permissions.ApproveTours) {
			return nil, permissionDenied("role %s cannot change tour status", role)
		}
		switch *input.Status {
		case models.StatusApproved:
			if !CanApprove(tour.Status) {
				return nil, validation("cannot approve a tour in status %s", tour.Status)
			}
			tour.Status = models.StatusApproved
			tour.StatusDetails = nil
		case models.StatusRejected:
			if input.StatusDetails == nil {
				return nil, validation("a rejection reason is required")
			}
			reason, err := checkReason(*input.StatusDetails)
			if err != nil {
				return nil, err
			}
			if !CanReject(tour.Status) {
				return nil, validation("cannot reject a tour in status %s", tour.Status)
			}
			tour.Status = models.StatusRejected
			tour.StatusDetails = &reason
		default:
			return nil, validation("unknown status %s", *input.Status)
		}
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&tour).Error
	}); err != nil {
		return nil, err
	}
	return &tour, nil
}

// CancelTourAsGuide is the only way the operating guide takes a tour off the
// schedule: a forced rejection with a fixed system note. No delete, no
// custom reason.
func CancelTourAsGuide(db *gorm.DB, role permissions.Role, ownerID uint, tourID uint) (*models.Tour, error) {
	if !permissions.Allows(role, permissions.ManageOwnTours) {
		return nil, permissionDenied("role %s cannot manage tours", role)
	}
	tour, _, err := ownedTour(db, ownerID, tourID)
	if err != nil {
		return nil, err
	}
	if !CanReject(tour.Status) {
		return nil, validation("cannot cancel a tour in status %s", tour.Status)
	}
	reason := CancelledByGuideReason
	tour.Status = models.StatusRejected
	tour.StatusDetails = &reason
	if err := applyStatus(db, tour, models.StatusRejected, &reason); err != nil {
		return nil, err
	}
	return tour, nil
}

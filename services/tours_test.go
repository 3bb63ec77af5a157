package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
)

func TestRequestDays(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		dateTime time.Time
		want     int
	}{
		{"ten days out", now.AddDate(0, 0, 10), 10},
		{"same day", now.Add(6 * time.Hour), 0},
		{"in the past", now.AddDate(0, 0, -3), 0},
		{"just under two days", now.Add(47 * time.Hour), 1},
	}
	for _, tc := range cases {
		if got := RequestDays(now, tc.dateTime); got != tc.want {
			t.Errorf("%s: RequestDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCheckAuxiliaryGuide(t *testing.T) {
	approvedGuide := &models.Agency{Type: models.AgencyTypeGuide, Status: models.StatusApproved}
	pendingGuide := &models.Agency{Type: models.AgencyTypeGuide, Status: models.StatusPending}
	approvedAgency := &models.Agency{Type: models.AgencyTypeAgency, Status: models.StatusApproved}

	if err := CheckAuxiliaryGuide(1, 1, approvedGuide); !errors.Is(err, ErrValidation) {
		t.Errorf("self-referential auxiliary guide: err = %v, want validation error", err)
	}
	if err := CheckAuxiliaryGuide(1, 2, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("missing auxiliary guide: err = %v, want validation error", err)
	}
	if err := CheckAuxiliaryGuide(1, 2, pendingGuide); !errors.Is(err, ErrValidation) {
		t.Errorf("unapproved auxiliary guide: err = %v, want validation error", err)
	}
	if err := CheckAuxiliaryGuide(1, 2, approvedAgency); !errors.Is(err, ErrValidation) {
		t.Errorf("non-guide auxiliary: err = %v, want validation error", err)
	}
	if err := CheckAuxiliaryGuide(1, 2, approvedGuide); err != nil {
		t.Errorf("valid auxiliary guide: err = %v, want nil", err)
	}
}

// Status and statusDetails in a guide's payload must never reach the record.
func TestApplyGuideEditDropsStatusFields(t *testing.T) {
	reason := "old reason"
	tour := models.Tour{
		Title:         "City walk",
		Status:        models.StatusApproved,
		StatusDetails: nil,
		RequestDate:   14,
	}

	newTitle := "Historic city walk"
	newStatus := models.StatusApproved
	ApplyGuideEdit(&tour, TourUpdateInput{
		Title:         &newTitle,
		Status:        &newStatus,
		StatusDetails: &reason,
	})

	if tour.Title != newTitle {
		t.Errorf("title = %q, want %q", tour.Title, newTitle)
	}
	if tour.Status != models.StatusApproved {
		t.Errorf("status = %s, want unchanged approved", tour.Status)
	}
	if tour.StatusDetails != nil {
		t.Errorf("statusDetails = %v, want unchanged nil", tour.StatusDetails)
	}
	if tour.RequestDate != 14 {
		t.Errorf("requestDate = %d, want unchanged 14", tour.RequestDate)
	}
}

func TestApplyGuideEditAuxiliaryGuide(t *testing.T) {
	aux := uint(7)
	tour := models.Tour{AuxiliaryGuideID: &aux}

	ApplyGuideEdit(&tour, TourUpdateInput{RemoveAuxiliaryGuide: true})
	if tour.AuxiliaryGuideID != nil {
		t.Errorf("auxiliaryGuideID = %v, want nil after removal", tour.AuxiliaryGuideID)
	}

	newAux := uint(9)
	ApplyGuideEdit(&tour, TourUpdateInput{AuxiliaryGuideID: &newAux})
	if tour.AuxiliaryGuideID == nil || *tour.AuxiliaryGuideID != 9 {
		t.Errorf("auxiliaryGuideID = %v, want 9", tour.AuxiliaryGuideID)
	}
}

func TestCancelledByGuideReasonIsFixed(t *testing.T) {
	if CancelledByGuideReason != "Cancelado pelo guia" {
		t.Errorf("CancelledByGuideReason = %q", CancelledByGuideReason)
	}
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Agency{}, &models.Business{}, &models.Tour{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedAgency(t *testing.T, db *gorm.DB, ownerID uint, agencyType, status string) *models.Agency {
	t.Helper()
	agency := models.Agency{OwnerID: ownerID, Type: agencyType, Name: "Trilhas da Serra", Status: status}
	if err := db.Create(&agency).Error; err != nil {
		t.Fatalf("seeding agency: %v", err)
	}
	return &agency
}

// A guide whose agency is still pending cannot schedule tours, even though
// the guide role itself holds createTours. Approval opens the gate.
func TestCreateTourRequiresApprovedAgency(t *testing.T) {
	db := openTestDB(t)
	agency := seedAgency(t, db, 42, models.AgencyTypeGuide, models.StatusPending)

	input := CreateTourInput{Title: "City walk", DateTime: time.Now().Add(10*24*time.Hour + time.Hour)}

	if _, err := CreateTour(db, permissions.RoleGuide, 42, input); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("pending agency: err = %v, want permission denied", err)
	}

	if err := db.Model(agency).Updates(map[string]interface{}{"status": models.StatusApproved}).Error; err != nil {
		t.Fatalf("approving agency: %v", err)
	}

	tour, err := CreateTour(db, permissions.RoleGuide, 42, input)
	if err != nil {
		t.Fatalf("approved agency: err = %v, want nil", err)
	}
	if tour.GuideID != agency.ID {
		t.Errorf("guideID = %d, want forced to %d", tour.GuideID, agency.ID)
	}
	if tour.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", tour.Status)
	}
	if tour.RequestDate != 10 {
		t.Errorf("requestDate = %d, want 10", tour.RequestDate)
	}
}

// An approved record of type agency still may not operate tours; the gate
// checks the type, not just the status.
func TestCreateTourRejectsNonGuideAgency(t *testing.T) {
	db := openTestDB(t)
	seedAgency(t, db, 42, models.AgencyTypeAgency, models.StatusApproved)

	input := CreateTourInput{Title: "City walk", DateTime: time.Now().Add(48 * time.Hour)}
	if _, err := CreateTour(db, permissions.RoleGuide, 42, input); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("agency-typed record: err = %v, want permission denied", err)
	}
}

// Approving an already-approved record is a precondition failure, reported
// as a validation error.
func TestApproveFromWrongState(t *testing.T) {
	db := openTestDB(t)
	agency := seedAgency(t, db, 42, models.AgencyTypeGuide, models.StatusApproved)

	tour := models.Tour{GuideID: agency.ID, Title: "City walk", DateTime: time.Now().Add(48 * time.Hour), Status: models.StatusApproved}
	if err := db.Create(&tour).Error; err != nil {
		t.Fatalf("seeding tour: %v", err)
	}

	if _, err := ApproveTour(db, permissions.RoleModerator, tour.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("approve approved tour: err = %v, want validation error", err)
	}

	business := models.Business{OwnerID: 7, Segment: "food", Name: "Cantina", Status: models.StatusRejected}
	if err := db.Create(&business).Error; err != nil {
		t.Fatalf("seeding business: %v", err)
	}
	if _, err := RejectBusiness(db, permissions.RoleAdmin, business.ID, "late"); !errors.Is(err, ErrValidation) {
		t.Errorf("reject rejected business: err = %v, want validation error", err)
	}
}

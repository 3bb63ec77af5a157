package services

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"

	"gorm.io/gorm"
)

// Ownership lookups for the single business or agency record an owner role
// may hold. A nil record with a nil error means "nothing created yet"; the
// caller decides whether that is a 404 or an invitation to create. Staff
// never go through these, they address records by id under the permission
// policy.

func FindOwnedBusiness(db *gorm.DB, ownerID uint) (*models.Business, error) {
	var businesses []models.Business
	if err := db.Where("owner_id = ?", ownerID).Limit(2).Find(&businesses).Error; err != nil {
		return nil, err
	}
	switch len(businesses) {
	case 0:
		return nil, nil
	case 1:
		return &businesses[0], nil
	default:
		// The unique index on owner_id should make this impossible.
		return nil, ErrOwnershipConflict
	}
}

func FindOwnedAgency(db *gorm.DB, ownerID uint) (*models.Agency, error) {
	var agencies []models.Agency
	if err := db.Where("owner_id = ?", ownerID).Limit(2).Find(&agencies).Error; err != nil {
		return nil, err
	}
	switch len(agencies) {
	case 0:
		return nil, nil
	case 1:
		return &agencies[0], nil
	default:
		return nil, ErrOwnershipConflict
	}
}

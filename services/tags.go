package services

import (
	"gorm.io/gorm"
)

// Replace-all tag association sync. Both run inside the transaction the
// caller opened for the parent entity save, so a failed insert rolls back
// the delete as well. An empty id list leaves the entity untagged.

func SyncBusinessTags(tx *gorm.DB, businessID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM business_tags WHERE business_id = ?", businessID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO business_tags (business_id, tag_id) VALUES (?, ?)", businessID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

func SyncAgencyTags(tx *gorm.DB, agencyID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM agency_tags WHERE agency_id = ?", agencyID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO agency_tags (agency_id, tag_id) VALUES (?, ?)", agencyID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

package routes

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func AdminListAgencies(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Agency{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if agencyType := ctx.URLParam("type"); agencyType != "" {
		query = query.Where("type = ?", agencyType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var agencies []models.Agency
	if err := query.Preload("Tags").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&agencies).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, agencies, page, perPage, total)
}

func AdminGetAgency(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var agency models.Agency
	if err := storage.DB.Preload("Tags").First(&agency, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &agency})
}

func AdminApproveAgency(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	_, role := utils.Principal(ctx)
	agency, svcErr := services.ApproveAgency(storage.DB, role, id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "agency.approve", "agency", agency.ID, nil, agency)
	services.NewNotificationService(storage.DB).
		NotifyStatusChange(agency.OwnerID, "agency", agency.Name, agency.Status, nil)
	ctx.JSON(iris.Map{"data": agency})
}

func AdminRejectAgency(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_payload", "reason required")
		return
	}

	_, role := utils.Principal(ctx)
	agency, svcErr := services.RejectAgency(storage.DB, role, id, body.Reason)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "agency.reject", "agency", agency.ID, nil, agency)
	services.NewNotificationService(storage.DB).
		NotifyStatusChange(agency.OwnerID, "agency", agency.Name, agency.Status, agency.StatusDetails)
	ctx.JSON(iris.Map{"data": agency})
}

// AdminDeleteAgency removes the agency and its tag links. Tours operated by
// the agency keep their rows; they simply stop resolving a guide.
func AdminDeleteAgency(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var agency models.Agency
	if err := storage.DB.First(&agency, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := services.SyncAgencyTags(tx, agency.ID, nil); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&agency).Error
	})
	if txErr != nil {
		handleServiceError(ctx, txErr)
		return
	}

	utils.Audit(ctx, "agency.delete", "agency", agency.ID, agency, nil)
	ctx.JSON(iris.Map{"message": "agency deleted"})
}

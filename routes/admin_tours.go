package routes

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
)

func AdminListTours(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Tour{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if guideID := ctx.URLParamIntDefault("guide", 0); guideID > 0 {
		query = query.Where("guide_id = ?", guideID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var tours []models.Tour
	if err := query.Preload("Guide").Preload("AuxiliaryGuide").
		Order("date_time ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&tours).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, tours, page, perPage, total)
}

func AdminGetTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.Preload("Guide").Preload("AuxiliaryGuide").First(&tour, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &tour})
}

func AdminApproveTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	_, role := utils.Principal(ctx)
	tour, svcErr := services.ApproveTour(storage.DB, role, id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "tour.approve", "tour", tour.ID, nil, tour)
	notifyTourOwner(tour)
	ctx.JSON(iris.Map{"data": tour})
}

func AdminRejectTour(ctx iris.Context) {
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
	tour, svcErr := services.RejectTour(storage.DB, role, id, body.Reason)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "tour.reject", "tour", tour.ID, nil, tour)
	notifyTourOwner(tour)
	ctx.JSON(iris.Map{"data": tour})
}

// AdminUpdateTour edits any tour field; a status in the payload goes through
// the same transition rules as the approve/reject endpoints.
func AdminUpdateTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input UpdateTourInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	_, role := utils.Principal(ctx)
	tour, svcErr := services.UpdateTourAsStaff(storage.DB, role, id, input.toServiceInput())
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "tour.update", "tour", tour.ID, nil, tour)
	ctx.JSON(iris.Map{"data": tour})
}

// AdminDeleteTour is the staff-only hard delete; guides can only cancel.
func AdminDeleteTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&tour).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tour.delete", "tour", tour.ID, tour, nil)
	ctx.JSON(iris.Map{"message": "tour deleted"})
}

// notifyTourOwner resolves the operating agency's owner and writes the
// status notification.
func notifyTourOwner(tour *models.Tour) {
	var agency models.Agency
	if err := storage.DB.First(&agency, tour.GuideID).Error; err != nil {
		return
	}
	services.NewNotificationService(storage.DB).
		NotifyStatusChange(agency.OwnerID, "tour", tour.Title, tour.Status, tour.StatusDetails)
}

package routes

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// AdminListBusinesses lists every business, any status, with optional
// filters.
func AdminListBusinesses(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Business{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if segment := ctx.URLParam("segment"); segment != "" {
		query = query.Where("segment = ?", segment)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var businesses []models.Business
	if err := query.Preload("Tags").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&businesses).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, businesses, page, perPage, total)
}

func AdminGetBusiness(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var business models.Business
	if err := storage.DB.Preload("Tags").First(&business, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &business})
}

func AdminApproveBusiness(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	_, role := utils.Principal(ctx)
	business, svcErr := services.ApproveBusiness(storage.DB, role, id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "business.approve", "business", business.ID, nil, business)
	services.NewNotificationService(storage.DB).
		NotifyStatusChange(business.OwnerID, "business", business.Name, business.Status, nil)
	ctx.JSON(iris.Map{"data": business})
}

func AdminRejectBusiness(ctx iris.Context) {
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
	business, svcErr := services.RejectBusiness(storage.DB, role, id, body.Reason)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}

	utils.Audit(ctx, "business.reject", "business", business.ID, nil, business)
	services.NewNotificationService(storage.DB).
		NotifyStatusChange(business.OwnerID, "business", business.Name, business.Status, business.StatusDetails)
	ctx.JSON(iris.Map{"data": business})
}

type AdminBusinessUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	Website     *string  `json:"website"`
	Images      []string `json:"images"`
	TagIDs      *[]uint  `json:"tagIDs"`
}

// AdminUpdateBusiness is the staff correction path: it touches fields, never
// the moderation status. Status moves only through approve/reject.
func AdminUpdateBusiness(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input AdminBusinessUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var business models.Business
	if err := storage.DB.First(&business, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	before := business

	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.City != nil {
		business.City = *input.City
	}
	if input.Phone != nil {
		business.Phone = *input.Phone
	}
	if input.Email != nil {
		business.Email = *input.Email
	}
	if input.Website != nil {
		business.Website = *input.Website
	}
	if input.Images != nil {
		business.Images = imagesJSON(input.Images)
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&business).Error; err != nil {
			return err
		}
		if input.TagIDs != nil {
			return services.SyncBusinessTags(tx, business.ID, *input.TagIDs)
		}
		return nil
	})
	if txErr != nil {
		handleServiceError(ctx, txErr)
		return
	}

	utils.Audit(ctx, "business.update", "business", business.ID, before, business)
	ctx.JSON(iris.Map{"data": &business})
}

// AdminDeleteBusiness removes the record and its tag links for good.
func AdminDeleteBusiness(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var business models.Business
	if err := storage.DB.First(&business, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := services.SyncBusinessTags(tx, business.ID, nil); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&business).Error
	})
	if txErr != nil {
		handleServiceError(ctx, txErr)
		return
	}

	utils.Audit(ctx, "business.delete", "business", business.ID, business, nil)
	ctx.JSON(iris.Map{"message": "business deleted"})
}

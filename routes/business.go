package routes

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Business segments are fixed by the account role, not by the payload.
var segmentByRole = map[permissions.Role]string{
	permissions.RoleBusinessFood:          "food",
	permissions.RoleBusinessAccommodation: "accommodation",
}

type BusinessInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Website     string   `json:"website"`
	Images      []string `json:"images"`
	TagIDs      *[]uint  `json:"tagIDs"` // nil means the payload did not mention tags
}

// CreateMyBusiness registers the caller's single business record, queued
// for moderation.
func CreateMyBusiness(ctx iris.Context) {
	userID, role := utils.Principal(ctx)

	segment, ok := segmentByRole[role]
	if !ok {
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "only business accounts can register a business")
		return
	}

	var input BusinessInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	existing, err := services.FindOwnedBusiness(storage.DB, userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if existing != nil {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "this account already has a business")
		return
	}

	business := models.Business{
		OwnerID:     userID,
		Segment:     segment,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		Phone:       input.Phone,
		Email:       input.Email,
		Website:     input.Website,
		Images:      imagesJSON(input.Images),
		Status:      models.StatusPending,
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&business).Error; err != nil {
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

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &business})
}

// GetMyBusiness returns the caller's record in whatever moderation state it
// is, including the rejection note.
func GetMyBusiness(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)

	business, err := services.FindOwnedBusiness(storage.DB.Preload("Tags"), userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if business == nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": business})
}

// UpdateMyBusiness applies an owner edit. Every owner edit re-arms
// moderation: the record goes back to pending and the rejection note is
// cleared, whatever the prior status.
func UpdateMyBusiness(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)

	var input BusinessInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	business, err := services.FindOwnedBusiness(storage.DB, userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if business == nil {
		utils.CreateNotFound(ctx)
		return
	}

	business.Name = input.Name
	business.Description = input.Description
	business.Address = input.Address
	business.City = input.City
	business.Phone = input.Phone
	business.Email = input.Email
	business.Website = input.Website
	business.Images = imagesJSON(input.Images)
	services.ResubmitBusiness(business)

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(business).Error; err != nil {
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

	ctx.JSON(iris.Map{"data": business})
}

// GetPublicBusinesses lists approved businesses only.
func GetPublicBusinesses(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Business{}).Where("status = ?", models.StatusApproved)
	if segment := ctx.URLParam("segment"); segment != "" {
		query = query.Where("segment = ?", segment)
	}
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if tagID := ctx.URLParamIntDefault("tag", 0); tagID > 0 {
		query = query.Joins("JOIN business_tags bt ON bt.business_id = businesses.id AND bt.tag_id = ?", tagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var businesses []models.Business
	if err := query.Preload("Tags").
		Order("name ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&businesses).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, businesses, page, perPage, total)
}

// GetPublicBusiness returns one approved business. Pending or rejected
// records stay invisible here.
func GetPublicBusiness(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var business models.Business
	if err := storage.DB.Preload("Tags").
		Where("status = ?", models.StatusApproved).
		First(&business, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &business})
}

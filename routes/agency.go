package routes

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type AgencyInput struct {
	Type        string   `json:"type" validate:"required"`
	Name        string   `json:"name" validate:"required,max=256"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Website     string   `json:"website"`
	Images      []string `json:"images"`
	TagIDs      *[]uint  `json:"tagIDs"`
}

func validAgencyType(agencyType string) bool {
	return slices.Contains([]string{models.AgencyTypeAgency, models.AgencyTypeGuide}, agencyType)
}

// CreateMyAgency registers the caller's single agency record, queued for
// moderation. Tours stay out of reach until staff approve it.
func CreateMyAgency(ctx iris.Context) {
	userID, role := utils.Principal(ctx)

	if role != permissions.RoleGuide {
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "only guide accounts can register an agency")
		return
	}

	var input AgencyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !validAgencyType(input.Type) {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation_error", "type must be agency or guide")
		return
	}

	existing, err := services.FindOwnedAgency(storage.DB, userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if existing != nil {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "this account already has an agency")
		return
	}

	agency := models.Agency{
		OwnerID:     userID,
		Type:        input.Type,
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
		if err := tx.Create(&agency).Error; err != nil {
			return err
		}
		if input.TagIDs != nil {
			return services.SyncAgencyTags(tx, agency.ID, *input.TagIDs)
		}
		return nil
	})
	if txErr != nil {
		handleServiceError(ctx, txErr)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &agency})
}

func GetMyAgency(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)

	agency, err := services.FindOwnedAgency(storage.DB.Preload("Tags"), userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if agency == nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": agency})
}

// UpdateMyAgency applies an owner edit. Unlike businesses, an agency edit
// re-arms moderation only from approved; an edit while rejected keeps the
// rejected status and the reviewer's note.
func UpdateMyAgency(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)

	var input AgencyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !validAgencyType(input.Type) {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation_error", "type must be agency or guide")
		return
	}

	agency, err := services.FindOwnedAgency(storage.DB, userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if agency == nil {
		utils.CreateNotFound(ctx)
		return
	}

	agency.Type = input.Type
	agency.Name = input.Name
	agency.Description = input.Description
	agency.Address = input.Address
	agency.City = input.City
	agency.Phone = input.Phone
	agency.Email = input.Email
	agency.Website = input.Website
	agency.Images = imagesJSON(input.Images)
	services.ResubmitAgency(agency)

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(agency).Error; err != nil {
			return err
		}
		if input.TagIDs != nil {
			return services.SyncAgencyTags(tx, agency.ID, *input.TagIDs)
		}
		return nil
	})
	if txErr != nil {
		handleServiceError(ctx, txErr)
		return
	}

	ctx.JSON(iris.Map{"data": agency})
}

// GetPublicAgencies lists approved agencies only.
func GetPublicAgencies(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Agency{}).Where("status = ?", models.StatusApproved)
	if agencyType := ctx.URLParam("type"); agencyType != "" {
		query = query.Where("type = ?", agencyType)
	}
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if tagID := ctx.URLParamIntDefault("tag", 0); tagID > 0 {
		query = query.Joins("JOIN agency_tags agt ON agt.agency_id = agencies.id AND agt.tag_id = ?", tagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var agencies []models.Agency
	if err := query.Preload("Tags").
		Order("name ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&agencies).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, agencies, page, perPage, total)
}

func GetPublicAgency(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var agency models.Agency
	if err := storage.DB.Preload("Tags").
		Where("status = ?", models.StatusApproved).
		First(&agency, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &agency})
}

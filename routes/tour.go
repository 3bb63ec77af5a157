package routes

import (
	"time"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreateTourInput struct {
	Title            string    `json:"title" validate:"required,max=256"`
	Description      string    `json:"description"`
	MeetingPoint     string    `json:"meetingPoint"`
	Price            float64   `json:"price" validate:"gte=0"`
	DateTime         time.Time `json:"dateTime" validate:"required"`
	StayDays         int       `json:"stayDays" validate:"gte=0"`
	AuxiliaryGuideID *uint     `json:"auxiliaryGuideID"`
}

// UpdateTourInput mentions every editable field plus the status pair. For
// guide edits the status fields are dropped before persistence; only staff
// reach them, through the admin endpoints.
type UpdateTourInput struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	MeetingPoint         *string    `json:"meetingPoint"`
	Price                *float64   `json:"price"`
	DateTime             *time.Time `json:"dateTime"`
	StayDays             *int       `json:"stayDays"`
	AuxiliaryGuideID     *uint      `json:"auxiliaryGuideID"`
	RemoveAuxiliaryGuide bool       `json:"removeAuxiliaryGuide"`
	Status               *string    `json:"status"`
	StatusDetails        *string    `json:"statusDetails"`
}

func (in UpdateTourInput) toServiceInput() services.TourUpdateInput {
	return services.TourUpdateInput{
		Title:                in.Title,
		Description:          in.Description,
		MeetingPoint:         in.MeetingPoint,
		Price:                in.Price,
		DateTime:             in.DateTime,
		StayDays:             in.StayDays,
		AuxiliaryGuideID:     in.AuxiliaryGuideID,
		RemoveAuxiliaryGuide: in.RemoveAuxiliaryGuide,
		Status:               in.Status,
		StatusDetails:        in.StatusDetails,
	}
}

// CreateTour schedules a tour for the caller's approved guide agency.
func CreateTour(ctx iris.Context) {
	userID, role := utils.Principal(ctx)

	var input CreateTourInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	tour, err := services.CreateTour(storage.DB, role, userID, services.CreateTourInput{
		Title:            input.Title,
		Description:      input.Description,
		MeetingPoint:     input.MeetingPoint,
		Price:            input.Price,
		DateTime:         input.DateTime,
		StayDays:         input.StayDays,
		AuxiliaryGuideID: input.AuxiliaryGuideID,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": tour})
}

// GetMyTours lists every tour of the caller's agency, any status.
func GetMyTours(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)

	agency, err := services.FindOwnedAgency(storage.DB, userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if agency == nil {
		utils.CreateNotFound(ctx)
		return
	}

	var tours []models.Tour
	if err := storage.DB.Where("guide_id = ?", agency.ID).
		Order("date_time ASC").
		Find(&tours).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": tours})
}

// UpdateTour is the guide-facing edit; status fields in the payload are
// silently ignored.
func UpdateTour(ctx iris.Context) {
	userID, role := utils.Principal(ctx)

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

	tour, svcErr := services.UpdateTourAsGuide(storage.DB, role, userID, id, input.toServiceInput())
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}
	ctx.JSON(iris.Map{"data": tour})
}

// CancelTour rejects the caller's tour with the fixed system note.
func CancelTour(ctx iris.Context) {
	userID, role := utils.Principal(ctx)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	tour, svcErr := services.CancelTourAsGuide(storage.DB, role, userID, id)
	if svcErr != nil {
		handleServiceError(ctx, svcErr)
		return
	}
	ctx.JSON(iris.Map{"data": tour})
}

// GetPublicTours lists approved tours, soonest first.
func GetPublicTours(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Tour{}).Where("tours.status = ?", models.StatusApproved)
	if guideID := ctx.URLParamIntDefault("guide", 0); guideID > 0 {
		query = query.Where("guide_id = ?", guideID)
	}
	if from := ctx.URLParam("from"); from != "" {
		if fromTime, parseErr := time.Parse(time.RFC3339, from); parseErr == nil {
			query = query.Where("date_time >= ?", fromTime)
		}
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

func GetPublicTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.Preload("Guide").Preload("AuxiliaryGuide").
		Where("status = ?", models.StatusApproved).
		First(&tour, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &tour})
}

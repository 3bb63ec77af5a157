package routes

import (
	"time"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GetMyNotifications returns the caller's inbox, newest first.
func GetMyNotifications(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if ctx.URLParamBoolDefault("unread", false) {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, notifications, page, perPage, total)
}

// MarkNotificationRead stamps one of the caller's notifications.
func MarkNotificationRead(ctx iris.Context) {
	userID, _ := utils.Principal(ctx)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var notification models.Notification
	if err := storage.DB.Where("user_id = ?", userID).First(&notification, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &notification})
}

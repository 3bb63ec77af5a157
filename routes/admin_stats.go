package routes

import (
	"time"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"

	"github.com/kataras/iris/v12"
)

// GET /admin/stats
func AdminStats(ctx iris.Context) {
	var pendingBusinesses int64
	storage.DB.Model(&models.Business{}).Where("status = ?", models.StatusPending).Count(&pendingBusinesses)
	var pendingAgencies int64
	storage.DB.Model(&models.Agency{}).Where("status = ?", models.StatusPending).Count(&pendingAgencies)
	var pendingTours int64
	storage.DB.Model(&models.Tour{}).Where("status = ?", models.StatusPending).Count(&pendingTours)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newTours7, newTours30 int64
	storage.DB.Model(&models.Tour{}).Where("created_at >= ?", since7).Count(&newTours7)
	storage.DB.Model(&models.Tour{}).Where("created_at >= ?", since30).Count(&newTours30)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"pending_businesses": pendingBusinesses,
			"pending_agencies":   pendingAgencies,
			"pending_tours":      pendingTours,
			"new_tours_7d":       newTours7,
			"new_tours_30d":      newTours30,
		},
		"meta": iris.Map{},
	})
}

// GET /admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}})
}

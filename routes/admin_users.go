package routes

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
)

func AdminListUsers(ctx iris.Context) {
	page, perPage := pagination(ctx)

	query := storage.DB.Model(&models.User{})
	if role := ctx.URLParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if email := ctx.URLParam("email"); email != "" {
		query = query.Where("email ILIKE ?", "%"+email+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// AdminChangeUserRole reassigns an account's role. Restricted to admins;
// moderators cannot mint other staff.
func AdminChangeUserRole(ctx iris.Context) {
	_, role := utils.Principal(ctx)
	if role != permissions.RoleAdmin {
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "admin access required")
		return
	}

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := ctx.ReadJSON(&body); err != nil || !permissions.Valid(permissions.Role(body.Role)) {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", "role must be one of admin, moderator, business_food, business_accommodation, guide")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := user
	user.Role = body.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.role_change", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"data": &user})
}

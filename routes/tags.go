package routes

import (
	"strings"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
)

type TagInput struct {
	Name string `json:"name" validate:"required,max=64"`
	Icon string `json:"icon"`
}

// GetTags is the public tag catalog used by the directory filters.
func GetTags(ctx iris.Context) {
	var tags []models.Tag
	if err := storage.DB.Order("name ASC").Find(&tags).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": tags})
}

func tagNameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	query := storage.DB.Model(&models.Tag{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdminCreateTag adds a tag to the catalog; names are unique.
func AdminCreateTag(ctx iris.Context) {
	var input TagInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation_error", "name is required")
		return
	}

	taken, err := tagNameTaken(input.Name, 0)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if taken {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "a tag with this name already exists")
		return
	}

	tag := models.Tag{Name: input.Name, Icon: input.Icon}
	if err := storage.DB.Create(&tag).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tag.create", "tag", tag.ID, nil, tag)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &tag})
}

func AdminUpdateTag(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input TagInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation_error", "name is required")
		return
	}

	var tag models.Tag
	if err := storage.DB.First(&tag, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	taken, err := tagNameTaken(input.Name, tag.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if taken {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "a tag with this name already exists")
		return
	}

	before := tag
	tag.Name = input.Name
	tag.Icon = input.Icon
	if err := storage.DB.Save(&tag).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tag.update", "tag", tag.ID, before, tag)
	ctx.JSON(iris.Map{"data": &tag})
}

// AdminDeleteTag removes the tag and its associations in one transaction.
func AdminDeleteTag(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var tag models.Tag
	if err := storage.DB.First(&tag, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	tx := storage.DB.Begin()
	if err := tx.Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.Exec("DELETE FROM business_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := tx.Exec("DELETE FROM agency_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := tx.Unscoped().Delete(&tag).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tag.delete", "tag", tag.ID, tag, nil)
	ctx.JSON(iris.Map{"message": "tag deleted"})
}

package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/services"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Everything unrecognized is a generic 500 that leaks nothing.
func handleServiceError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, services.ErrPermissionDenied):
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", errDetail(err, services.ErrPermissionDenied))
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", errDetail(err, services.ErrValidation))
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(ctx, http.StatusConflict, "conflict", errDetail(err, services.ErrConflict))
	default:
		log.Printf("unexpected error: %v", err)
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "an internal server error occurred")
	}
}

// errDetail strips the sentinel prefix so the client sees only the
// human-readable part ("agency not approved", not the wrapper).
func errDetail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func pagination(ctx iris.Context) (page, perPage int) {
	page = ctx.URLParamIntDefault("page", 1)
	perPage = ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

// imagesJSON normalizes an optional URL list into a JSON column value,
// never null.
func imagesJSON(images []string) datatypes.JSON {
	if images == nil {
		images = []string{}
	}
	b, _ := json.Marshal(images)
	return datatypes.JSON(b)
}

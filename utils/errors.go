package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"error": title, "message": detail})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "server_error", "an internal server error occurred", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "not_found", "resource not found", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(iris.StatusForbidden, "forbidden", "you are not allowed to perform this action", ctx)
}

// HandleValidationErrors answers a failed ReadJSON with the per-field
// validator output when available, otherwise a generic 400.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]iris.Map, 0, len(errs))
		for _, validationErr := range errs {
			validationErrors = append(validationErrors, iris.Map{
				"field": validationErr.Field(),
				"tag":   validationErr.Tag(),
				"value": validationErr.Param(),
			})
		}
		ctx.StopWithJSON(iris.StatusUnprocessableEntity, iris.Map{
			"error":   "validation_error",
			"message": "one or more fields failed validation",
			"fields":  validationErrors,
		})
		return
	}
	CreateError(iris.StatusBadRequest, "invalid_payload", "request body could not be parsed", ctx)
}

package utils

import (
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// Claims returns the access-token claims for the current request.
func Claims(ctx iris.Context) *AccessToken {
	return jwt.Get(ctx).(*AccessToken)
}

// Principal is the authenticated actor: user id plus parsed role.
func Principal(ctx iris.Context) (uint, permissions.Role) {
	claims := Claims(ctx)
	return claims.ID, permissions.Role(claims.Role)
}

// StaffOnlyMiddleware guards the /api/admin party: only admin and moderator
// roles get past it.
func StaffOnlyMiddleware(ctx iris.Context) {
	claims := Claims(ctx)
	if !permissions.IsStaff(permissions.Role(claims.Role)) {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "staff access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// RequirePermission gates a single route on one policy action.
func RequirePermission(action permissions.Action) iris.Handler {
	return func(ctx iris.Context) {
		_, role := Principal(ctx)
		if !permissions.Allows(role, action) {
			ctx.StatusCode(iris.StatusForbidden)
			ctx.JSON(iris.Map{"error": "forbidden", "message": "missing permission: " + string(action)})
			return
		}
		ctx.Next()
	}
}

package main

import (
	"log"
	"os"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/routes"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/me", accessTokenVerifierMiddleware, routes.GetMe)
	}

	business := app.Party("/api/business")
	{
		business.Get("/", routes.GetPublicBusinesses)
		business.Get("/{id:uint}", routes.GetPublicBusiness)
		business.Post("/mine", accessTokenVerifierMiddleware, routes.CreateMyBusiness)
		business.Get("/mine", accessTokenVerifierMiddleware, routes.GetMyBusiness)
		business.Patch("/mine", accessTokenVerifierMiddleware, routes.UpdateMyBusiness)
	}

	agency := app.Party("/api/agency")
	{
		agency.Get("/", routes.GetPublicAgencies)
		agency.Get("/{id:uint}", routes.GetPublicAgency)
		agency.Post("/mine", accessTokenVerifierMiddleware, routes.CreateMyAgency)
		agency.Get("/mine", accessTokenVerifierMiddleware, routes.GetMyAgency)
		agency.Patch("/mine", accessTokenVerifierMiddleware, routes.UpdateMyAgency)
	}

	tour := app.Party("/api/tour")
	{
		tour.Get("/", routes.GetPublicTours)
		tour.Get("/{id:uint}", routes.GetPublicTour)
		tour.Post("/", accessTokenVerifierMiddleware, routes.CreateTour)
		tour.Get("/mine", accessTokenVerifierMiddleware, routes.GetMyTours)
		tour.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateTour)
		tour.Post("/{id:uint}/cancel", accessTokenVerifierMiddleware, routes.CancelTour)
	}

	app.Get("/api/tags", routes.GetTags)

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", routes.GetMyNotifications)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", routes.AdminChangeUserRole)

		admin.Get("/businesses", utils.RequirePermission(permissions.ViewAllBusinesses), routes.AdminListBusinesses)
		admin.Get("/businesses/{id:uint}", utils.RequirePermission(permissions.ViewAllBusinesses), routes.AdminGetBusiness)
		admin.Post("/businesses/{id:uint}/approve", routes.AdminApproveBusiness)
		admin.Post("/businesses/{id:uint}/reject", routes.AdminRejectBusiness)
		admin.Patch("/businesses/{id:uint}", utils.RequirePermission(permissions.EditAnyBusiness), routes.AdminUpdateBusiness)
		admin.Delete("/businesses/{id:uint}", routes.AdminDeleteBusiness)

		admin.Get("/agencies", utils.RequirePermission(permissions.ViewAllAgencies), routes.AdminListAgencies)
		admin.Get("/agencies/{id:uint}", utils.RequirePermission(permissions.ViewAllAgencies), routes.AdminGetAgency)
		admin.Post("/agencies/{id:uint}/approve", routes.AdminApproveAgency)
		admin.Post("/agencies/{id:uint}/reject", routes.AdminRejectAgency)
		admin.Delete("/agencies/{id:uint}", routes.AdminDeleteAgency)

		admin.Get("/tours", utils.RequirePermission(permissions.ViewAllTours), routes.AdminListTours)
		admin.Get("/tours/{id:uint}", utils.RequirePermission(permissions.ViewAllTours), routes.AdminGetTour)
		admin.Post("/tours/{id:uint}/approve", routes.AdminApproveTour)
		admin.Post("/tours/{id:uint}/reject", routes.AdminRejectTour)
		admin.Patch("/tours/{id:uint}", routes.AdminUpdateTour)
		admin.Delete("/tours/{id:uint}", routes.AdminDeleteTour)

		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)

		admin.Post("/tags", utils.RequirePermission(permissions.CreateTags), routes.AdminCreateTag)
		admin.Patch("/tags/{id:uint}", utils.RequirePermission(permissions.EditTags), routes.AdminUpdateTag)
		admin.Delete("/tags/{id:uint}", utils.RequirePermission(permissions.DeleteTags), routes.AdminDeleteTag)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

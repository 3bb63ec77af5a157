package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/permissions"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp wires an admin party with the real middleware chain and a
// stub handler, so the RBAC surface is testable without storage.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	ok := func(ctx iris.Context) { ctx.StatusCode(iris.StatusNoContent) }

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		admin.Get("/businesses", utils.RequirePermission(permissions.ViewAllBusinesses), ok)
		admin.Patch("/businesses/1", utils.RequirePermission(permissions.EditAnyBusiness), ok)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func signTestToken(t *testing.T, id uint, role string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, err := signer.Sign(utils.AccessToken{ID: id, Role: role})
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return string(token)
}

func request(t *testing.T, app *iris.Application, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestAdminPartyRequiresToken(t *testing.T) {
	app := buildTestApp()

	resp := request(t, app, http.MethodGet, "/api/admin/businesses", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestAdminPartyRejectsOwnerRoles(t *testing.T) {
	app := buildTestApp()

	for _, role := range []string{"guide", "business_food", "business_accommodation"} {
		resp := request(t, app, http.MethodGet, "/api/admin/businesses", signTestToken(t, 2, role))
		if resp.Code != http.StatusForbidden {
			t.Errorf("role %s: expected 403, got %d", role, resp.Code)
		}
	}
}

func TestAdminPartyRejectsUnknownRole(t *testing.T) {
	app := buildTestApp()

	resp := request(t, app, http.MethodGet, "/api/admin/businesses", signTestToken(t, 3, "superuser"))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown role, got %d", resp.Code)
	}
}

func TestAdminPartyAllowsStaff(t *testing.T) {
	app := buildTestApp()

	for _, role := range []string{"admin", "moderator"} {
		resp := request(t, app, http.MethodGet, "/api/admin/businesses", signTestToken(t, 1, role))
		if resp.Code != http.StatusNoContent {
			t.Errorf("role %s: expected 204, got %d", role, resp.Code)
		}
		resp = request(t, app, http.MethodPatch, "/api/admin/businesses/1", signTestToken(t, 1, role))
		if resp.Code != http.StatusNoContent {
			t.Errorf("role %s edit: expected 204, got %d", role, resp.Code)
		}
	}
}

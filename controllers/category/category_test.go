package categoryController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	categoryRoutes "learnhub/routers/categoryRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}
	require.NoError(t, database.ConnectTestDb())

	app := fiber.New()
	categoryRoutes.SetupCategoryRoutes(app)
	return app
}

func newUserToken(t *testing.T, role string) string {
	t.Helper()

	user := models.User{
		Name:  role + " user",
		Email: role + "@example.com",
		Role:  role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, token string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out apiResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestCreateCategory(t *testing.T) {
	app := setupApp(t)
	admin := newUserToken(t, models.RoleAdmin)

	code, out := doRequest(t, app, "POST", "/api/category/create", `{"name":"Web Development"}`, admin)
	require.Equal(t, fiber.StatusCreated, code)
	require.Equal(t, "Category created successfully", out.Message)

	// Duplicate name
	code, out = doRequest(t, app, "POST", "/api/category/create", `{"name":"Web Development"}`, admin)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Category already exists", out.Message)

	// Name outside the fixed set
	code, out = doRequest(t, app, "POST", "/api/category/create", `{"name":"Underwater Basket Weaving"}`, admin)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid category name", out.Message)

	// Empty name
	code, _ = doRequest(t, app, "POST", "/api/category/create", `{"name":""}`, admin)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	student := newUserToken(t, models.RoleStudent)

	code, out := doRequest(t, app, "POST", "/api/category/create", `{"name":"Data Science"}`, student)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "Access denied: No Permission", out.Message)

	code, _ = doRequest(t, app, "POST", "/api/category/create", `{"name":"Data Science"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestGetAllCategories(t *testing.T) {
	app := setupApp(t)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Category{Name: "Web Development"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Data Science"}).Error)

	code, out := doRequest(t, app, "GET", "/api/category/", "", "")
	require.Equal(t, fiber.StatusOK, code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(out.Data, &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "Data Science", categories[0].Name)
	assert.Equal(t, "Web Development", categories[1].Name)
}

func TestDeleteCategory(t *testing.T) {
	app := setupApp(t)
	admin := newUserToken(t, models.RoleAdmin)

	category := models.Category{Name: "Cybersecurity"}
	require.NoError(t, database.Database.Db.Create(&category).Error)

	code, out := doRequest(t, app, "DELETE", fmt.Sprintf("/api/category/%d", category.ID), "", admin)
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "Category deleted successfully", out.Message)

	code, out = doRequest(t, app, "DELETE", fmt.Sprintf("/api/category/%d", category.ID), "", admin)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Category not found", out.Message)
}

func TestRecreateDeletedCategory(t *testing.T) {
	app := setupApp(t)
	admin := newUserToken(t, models.RoleAdmin)

	code, out := doRequest(t, app, "POST", "/api/category/create", `{"name":"Web Development"}`, admin)
	require.Equal(t, fiber.StatusCreated, code)

	var category models.Category
	require.NoError(t, json.Unmarshal(out.Data, &category))

	code, _ = doRequest(t, app, "DELETE", fmt.Sprintf("/api/category/%d", category.ID), "", admin)
	require.Equal(t, fiber.StatusOK, code)

	// The name is free again once the category is gone
	code, out = doRequest(t, app, "POST", "/api/category/create", `{"name":"Web Development"}`, admin)
	require.Equal(t, fiber.StatusCreated, code)
	require.Equal(t, "Category created successfully", out.Message)
}

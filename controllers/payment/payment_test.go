package paymentController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	paymentRoutes "learnhub/routers/paymentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fakeGateway stands in for the Paystack API. Transactions registered
// on it are served back on verify with their stored status and metadata.
type fakeGateway struct {
	transactions map[string]map[string]interface{}
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()

	gw := &fakeGateway{transactions: map[string]map[string]interface{}{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"reference":         "ref-init-001",
				"authorization_url": "https://checkout.paystack.com/ref-init-001",
			},
		})
	})
	mux.HandleFunc("/transaction/verify/", func(w http.ResponseWriter, r *http.Request) {
		reference := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")
		txn, ok := gw.transactions[reference]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Transaction reference not found",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   txn,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	config.AppConfig.PaystackBaseURL = server.URL
	return gw
}

func (g *fakeGateway) addTransaction(reference, status string, userID, courseID uint) {
	g.transactions[reference] = map[string]interface{}{
		"status":    status,
		"reference": reference,
		"metadata":  map[string]interface{}{"userId": userID, "courseId": courseID},
	}
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		PaystackSecretKey: "sk_test_abc",
	}
	require.NoError(t, database.ConnectTestDb())

	app := fiber.New()
	paymentRoutes.SetupPaymentRoutes(app)
	return app
}

func newUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: strings.Split(email, "@")[0], Email: email, Role: role}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func newCourse(t *testing.T, price float64) models.Course {
	t.Helper()

	db := database.Database.Db
	category := models.Category{Name: "Web Development"}
	require.NoError(t, db.Create(&category).Error)

	instructor := models.User{Name: "ada", Email: "ada@example.com", Role: models.RoleInstructor}
	require.NoError(t, db.Create(&instructor).Error)

	course := models.Course{
		Title:        "Go Basics",
		Description:  "A thorough course",
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
		Price:        price,
		MaxStudents:  models.DefaultMaxStudents,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (int, apiResponse) {
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

func TestInitializePayment(t *testing.T) {
	app := setupApp(t)
	newFakeGateway(t)

	course := newCourse(t, 150)
	student, token := newUser(t, "bob@example.com", models.RoleStudent)

	code, out := doJSON(t, app, "POST", fmt.Sprintf("/api/payment/courses/%d/initialize-payment", course.ID), "", token)
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "Payment initialized", out.Message)

	var data struct {
		Reference        string `json:"reference"`
		AuthorizationURL string `json:"authorization_url"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	assert.Equal(t, "ref-init-001", data.Reference)
	assert.NotEmpty(t, data.AuthorizationURL)

	// A pending purchase is recorded under the gateway reference
	var purchase models.Purchase
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&purchase).Error)
	assert.Equal(t, models.PaymentPending, purchase.PaymentStatus)
	assert.Equal(t, "ref-init-001", purchase.Reference)
}

func TestInitializePaymentRequiresStudent(t *testing.T) {
	app := setupApp(t)
	newFakeGateway(t)

	course := newCourse(t, 150)
	_, token := newUser(t, "eve@example.com", models.RoleInstructor)

	code, out := doJSON(t, app, "POST", fmt.Sprintf("/api/payment/courses/%d/initialize-payment", course.ID), "", token)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "Access denied: No Permission", out.Message)
}

func TestInitializePaymentUnknownCourse(t *testing.T) {
	app := setupApp(t)
	newFakeGateway(t)

	_, token := newUser(t, "bob@example.com", models.RoleStudent)

	code, out := doJSON(t, app, "POST", "/api/payment/courses/9999/initialize-payment", "", token)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Course not found", out.Message)
}

func TestVerifyPaymentSuccess(t *testing.T) {
	app := setupApp(t)
	gw := newFakeGateway(t)

	course := newCourse(t, 150)
	student, _ := newUser(t, "bob@example.com", models.RoleStudent)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Purchase{
		UserID:        student.ID,
		CourseID:      course.ID,
		PaymentStatus: models.PaymentPending,
		Reference:     "ref-abc",
	}).Error)
	gw.addTransaction("ref-abc", "success", student.ID, course.ID)

	code, out := doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":"ref-abc"}`, "")
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "Payment verified and records updated", out.Message)

	var purchase models.Purchase
	require.NoError(t, db.Where("reference = ?", "ref-abc").First(&purchase).Error)
	assert.Equal(t, models.PaymentSuccess, purchase.PaymentStatus)

	var enrollment models.Enrollment
	require.NoError(t, db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, models.PaymentPaid, enrollment.Status)
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	app := setupApp(t)
	gw := newFakeGateway(t)

	course := newCourse(t, 150)
	student, _ := newUser(t, "bob@example.com", models.RoleStudent)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Purchase{
		UserID:        student.ID,
		CourseID:      course.ID,
		PaymentStatus: models.PaymentPending,
		Reference:     "ref-abc",
	}).Error)
	// Enrollment from before the payment went through
	require.NoError(t, db.Create(&models.Enrollment{
		UserID:   student.ID,
		CourseID: course.ID,
		Status:   models.PaymentPending,
	}).Error)
	gw.addTransaction("ref-abc", "success", student.ID, course.ID)

	for i := 0; i < 2; i++ {
		code, out := doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":"ref-abc"}`, "")
		require.Equal(t, fiber.StatusOK, code)
		require.Equal(t, "Payment verified and records updated", out.Message)
	}

	var count int64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)

	var enrollment models.Enrollment
	require.NoError(t, db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, models.PaymentPaid, enrollment.Status)
}

func TestVerifyPaymentFailures(t *testing.T) {
	app := setupApp(t)
	gw := newFakeGateway(t)

	course := newCourse(t, 150)
	student, _ := newUser(t, "bob@example.com", models.RoleStudent)
	gw.addTransaction("ref-abandoned", "abandoned", student.ID, course.ID)
	gw.addTransaction("ref-failed", "failed", student.ID, course.ID)

	code, out := doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":"ref-abandoned"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Payment was not completed", out.Message)

	code, out = doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":"ref-failed"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Payment verification failed", out.Message)

	code, out = doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":""}`, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Missing transaction reference", out.Message)

	// Reference the gateway has never seen
	code, out = doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":"ref-unknown"}`, "")
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "Server error", out.Message)
}

func TestVerifyPaymentMissingPurchase(t *testing.T) {
	app := setupApp(t)
	gw := newFakeGateway(t)

	course := newCourse(t, 150)
	student, _ := newUser(t, "bob@example.com", models.RoleStudent)

	// Gateway confirms a reference no purchase was recorded for
	gw.addTransaction("ref-ghost", "success", student.ID, course.ID)

	code, out := doJSON(t, app, "POST", "/api/payment/verify-payment", `{"reference":"ref-ghost"}`, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "User course not found", out.Message)
}

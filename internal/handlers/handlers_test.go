package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/layebamba/eventify/internal/middleware"
	"github.com/layebamba/eventify/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "eventify_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Event{}, &models.Registration{}, &models.EventView{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter wires the same middleware and route layout the server uses
// for the resources exercised in these tests.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/logout", Logout)

	users := auth.Group("/users")
	users.Use(middleware.JWTAuthMiddleware())
	users.GET("", ListUsers)
	users.GET("/:id", GetUser)
	users.PUT("/:id", UpdateUser)
	users.DELETE("/:id", DeleteUser)

	events := api.Group("/events")
	events.GET("", ListEvents)
	events.GET("/:id", middleware.OptionalJWTMiddleware(), GetEvent)

	authenticated := events.Group("")
	authenticated.Use(middleware.JWTAuthMiddleware())
	authenticated.GET("/organizer/my-events", ListMyEvents)
	authenticated.GET("/organizer/stats", GetOrganizerStats)
	authenticated.GET("/:id/stats", GetEventStats)

	organizer := authenticated.Group("")
	organizer.Use(middleware.RequireOrganizer())
	organizer.POST("", CreateEvent)
	organizer.PUT("/:id", UpdateEvent)
	organizer.DELETE("/:id", DeleteEvent)

	categories := api.Group("/categories")
	categories.GET("", ListCategories)
	categories.GET("/:id", GetCategory)

	categoryAdmin := categories.Group("")
	categoryAdmin.Use(middleware.JWTAuthMiddleware(), middleware.RequireOrganizer())
	categoryAdmin.POST("", CreateCategory)
	categoryAdmin.PUT("/:id", UpdateCategory)
	categoryAdmin.DELETE("/:id", DeleteCategory)

	registrations := api.Group("/registrations")
	registrations.Use(middleware.JWTAuthMiddleware())
	registrations.GET("", ListRegistrations)
	registrations.POST("", CreateRegistration)
	registrations.GET("/:id", GetRegistration)
	registrations.PUT("/:id", UpdateRegistration)
	registrations.DELETE("/:id", DeleteRegistration)
	registrations.GET("/:id/qrcode", GenerateRegistrationQR)
	registrations.POST("/validate", middleware.RequireOrganizer(), ValidateRegistration)

	return r
}

func createTestUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Description: "test category"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func createTestEvent(t *testing.T, db *gorm.DB, organizer *models.User, category *models.Category, title string, isPublic bool) *models.Event {
	t.Helper()

	event := &models.Event{
		Title:       title,
		Description: "test event",
		Location:    "Paris",
		EventDate:   mustParseTime(t, "2026-10-01T19:00:00Z"),
		IsPublic:    isPublic,
		OrganizerID: organizer.ID,
		CategoryID:  category.ID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := generateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r *gin.Engine, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write form field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

package models

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "eventify_models_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Category{}, &Event{}, &Registration{}, &EventView{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCategorySlugDerivedFromName(t *testing.T) {
	db := newTestDB(t)

	category := Category{Name: "Conférence", Description: "Conférences et séminaires"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "conference" {
		t.Fatalf("expected slug conference, got %q", category.Slug)
	}
}

func TestCategorySlugRegeneratesOnRename(t *testing.T) {
	db := newTestDB(t)

	category := Category{Name: "Musique Live"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "musique-live" {
		t.Fatalf("expected slug musique-live, got %q", category.Slug)
	}

	category.Name = "Soirée Électro"
	if err := db.Save(&category).Error; err != nil {
		t.Fatalf("save category: %v", err)
	}

	var reloaded Category
	if err := db.Where("id = ?", category.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload category: %v", err)
	}
	if reloaded.Slug != "soiree-electro" {
		t.Fatalf("expected regenerated slug soiree-electro, got %q", reloaded.Slug)
	}
}

func TestRegistrationUniquePerUserAndEvent(t *testing.T) {
	db := newTestDB(t)

	user := User{Email: "u@example.com", Password: "x", FirstName: "U", LastName: "Ser", Role: RoleParticipant}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	organizer := User{Email: "o@example.com", Password: "x", FirstName: "O", LastName: "Rg", Role: RoleOrganizer}
	if err := db.Create(&organizer).Error; err != nil {
		t.Fatalf("create organizer: %v", err)
	}
	category := Category{Name: "Concert"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	event := Event{
		Title:       "Jazz Night",
		Description: "jazz",
		Location:    "Paris",
		OrganizerID: organizer.ID,
		CategoryID:  category.ID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}

	first := Registration{UserID: user.ID, EventID: event.ID, Status: StatusConfirmed}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create first registration: %v", err)
	}

	second := Registration{UserID: user.ID, EventID: event.ID, Status: StatusConfirmed}
	if err := db.Create(&second).Error; err == nil {
		t.Fatal("expected unique index violation for duplicate registration")
	}
}

func TestRoleAndStatusValidation(t *testing.T) {
	if !IsValidRole(RoleParticipant) || !IsValidRole(RoleOrganizer) {
		t.Fatal("expected both roles to be valid")
	}
	if IsValidRole("admin") {
		t.Fatal("expected admin to be invalid")
	}
	if !IsValidRegistrationStatus(StatusPending) || !IsValidRegistrationStatus(StatusConfirmed) || !IsValidRegistrationStatus(StatusCancelled) {
		t.Fatal("expected all three statuses to be valid")
	}
	if IsValidRegistrationStatus("waitlisted") {
		t.Fatal("expected waitlisted to be invalid")
	}
}

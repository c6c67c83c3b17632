package handlers

import (
	"net/http"
	"testing"

	"github.com/layebamba/eventify/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "alice@example.com",
		"password":  "secret123",
		"firstName": "Alice",
		"lastName":  "Martin",
		"role":      models.RoleOrganizer,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token"] == "" || body["token"] == nil {
		t.Fatalf("register: expected a token in response, got %v", body)
	}

	var stored models.User
	if err := db.Where("email = ?", "alice@example.com").First(&stored).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	createTestUser(t, db, "bob@example.com", "secret123", models.RoleParticipant)

	// One character off.
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "bob@example.com",
		"password": "secret124",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "bob@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for correct password, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	createTestUser(t, db, "carol@example.com", "secret123", models.RoleParticipant)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "carol@example.com",
		"password":  "another123",
		"firstName": "Carol",
		"lastName":  "Dupont",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "dave@example.com",
		"password":  "secret123",
		"firstName": "Dave",
		"lastName":  "Morel",
		"role":      "admin",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", w.Code)
	}
}

func TestUpdateUserReturnsOldAndNew(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user := createTestUser(t, db, "erin@example.com", "secret123", models.RoleParticipant)
	token := tokenFor(t, user)

	w := doJSON(t, r, http.MethodPut, "/api/v1/auth/users/"+user.ID.String(), token, map[string]any{
		"firstName": "Erin",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	oldData := data["old"].(map[string]any)
	newData := data["new"].(map[string]any)
	if oldData["firstName"] != "Test" {
		t.Fatalf("expected old firstName Test, got %v", oldData["firstName"])
	}
	if newData["firstName"] != "Erin" {
		t.Fatalf("expected new firstName Erin, got %v", newData["firstName"])
	}
	// Omitted fields keep their values.
	if newData["lastName"] != "User" {
		t.Fatalf("expected lastName unchanged, got %v", newData["lastName"])
	}
}

func TestUsersRoutesRequireToken(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/users", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flight-booking/services/guest"
	"flight-booking/storage/memory"
	authTypes "flight-booking/types/auth"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	store := memory.New()
	controller := NewAuthController(store, guest.NewService(store))

	app := fiber.New()
	app.Post("/api/auth/register", controller.Register)
	app.Post("/api/auth/login", controller.Login)
	return app, store
}

func jsonRequest(t *testing.T, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func register(t *testing.T, app *fiber.App, email string) *http.Response {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, "/api/auth/register", authTypes.RegisterRequest{
		Email:    email,
		FullName: "Ada Lovelace",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	app, store := newTestApp(t)

	if resp := register(t, app, "Ada@Example.COM"); resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	stored, err := store.UserByEmail(t.Context(), "ada@example.com")
	if err != nil {
		t.Fatalf("UserByEmail() error: %v", err)
	}
	if stored.PasswordHash == nil || *stored.PasswordHash == "correct-horse" {
		t.Fatal("password stored in the clear")
	}

	resp, err := app.Test(jsonRequest(t, "/api/auth/login", authTypes.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	var envelope struct {
		Token string                  `json:"token"`
		Data  authTypes.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Token == "" {
		t.Fatal("login response carries no token")
	}
	if envelope.Data.Email != "ada@example.com" {
		t.Fatalf("login email = %q", envelope.Data.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "ada@example.com")
	if resp := register(t, app, "ada@example.com"); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", resp.StatusCode)
	}
}

func TestRegisterRejectsSentinelAddress(t *testing.T) {
	app, _ := newTestApp(t)

	if resp := register(t, app, "guest@flight-booking.local"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("sentinel register status = %d, want 400", resp.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "ada@example.com")

	resp, err := app.Test(jsonRequest(t, "/api/auth/login", authTypes.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	}))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

// The sentinel has no credentials; login against it must fail exactly like a
// wrong password.
func TestLoginGuestSentinelRejected(t *testing.T) {
	app, store := newTestApp(t)

	svc := guest.NewService(store)
	if _, err := svc.Resolve(t.Context()); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	resp, err := app.Test(jsonRequest(t, "/api/auth/login", authTypes.LoginRequest{
		Email:    svc.SentinelEmail(),
		Password: "anything",
	}))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

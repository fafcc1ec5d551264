package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func newAuthApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := newMock(t)
	svc := NewService("secret", mock, nil)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc)
	return app, mock
}

func TestLoginHandler(t *testing.T) {
	app, mock := newAuthApp(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3r!geheim"), bcrypt.MinCost)
	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, username, password_hash`).
		WithArgs("anna@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "display_name", "avatar_url", "created_at", "updated_at"}).
			AddRow("u1", "anna@example.com", "anna", string(hash), "Anna", "", now, now))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body := `{"email":"anna@example.com","password":"Sup3r!geheim"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tokens.AccessToken == "" || tokens.TokenType != "Bearer" {
		t.Fatalf("unexpected token response: %+v", tokens)
	}
}

func TestLoginHandlerMissingFields(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@b.de"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRefreshHandlerRejectsGarbage(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(`{"refresh_token":"kaputt"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestDeleteAccountHandler(t *testing.T) {
	app, mock := newAuthApp(t)
	svc := NewService("secret", nil, nil)
	token, _ := svc.signToken("u1", accessTokenTTL)

	expectAccountCascade(mock, "u1")
	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req := httptest.NewRequest("DELETE", "/auth/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteAccountHandlerRequiresAuth(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/auth/account", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestVerifyHandler(t *testing.T) {
	app, _ := newAuthApp(t)
	svc := NewService("secret", nil, nil)
	token, _ := svc.signToken("u1", accessTokenTTL)

	req := httptest.NewRequest("GET", "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["user_id"] != "u1" {
		t.Fatalf("user_id = %q, want u1", out["user_id"])
	}
}

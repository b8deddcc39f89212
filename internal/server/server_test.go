package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/partyplanner/backend/internal/config"
	"github.com/partyplanner/backend/internal/database"
	"github.com/partyplanner/backend/internal/server"
	"gorm.io/gorm"
)

type envelope struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error"`
}

type authBody struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

type projectBody struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	DueDate string `json:"due_date"`
	Guests  []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"guests"`
}

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestServerWithDB(t)
	return app
}

func newTestServerWithDB(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	cfg := &config.Config{
		DBDriver:       "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "test.db"),
		BcryptCost:     4,
		AdminEmails:    "admin@example.com",
		CORSOrigins:    "*",
		BodyLimitBytes: 64 * 1024,
		RequestTimeout: 5 * time.Second,
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Open DB: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	srv := server.New(cfg, db, server.Options{})
	if err := srv.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return srv.App, db
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("%s %s: response is not an envelope: %q", method, path, raw)
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Response, &v); err != nil {
		t.Fatalf("decode response %s: %v", env.Response, err)
	}
	return v
}

func signUp(t *testing.T, app *fiber.App, email string) authBody {
	t.Helper()
	status, env := do(t, app, "POST", "/signUp", "", map[string]string{"email": email, "password": "password1"})
	if status != http.StatusCreated {
		t.Fatalf("signUp %s: status %d, body %s", email, status, env.Response)
	}
	return decode[authBody](t, env)
}

func boardPath(userID string, rest ...string) string {
	return "/" + userID + "/project-board/projects" + strings.Join(rest, "")
}

func TestScenario_SignUpProjectGuestDelete(t *testing.T) {
	app := newTestServer(t)

	// 1. Sign up.
	status, env := do(t, app, "POST", "/signUp", "", map[string]string{"email": "a@b.com", "password": "password1"})
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("signUp: status %d, envelope %+v", status, env)
	}
	user := decode[authBody](t, env)
	if user.AccessToken == "" || user.UserID == "" || user.Email != "a@b.com" {
		t.Fatalf("unexpected sign-up response: %+v", user)
	}

	// 2. Wrong password is rejected without leaking a token.
	status, env = do(t, app, "POST", "/signIn", "", map[string]string{"email": "a@b.com", "password": "wrong-pass"})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("signIn wrong password: status %d", status)
	}
	if strings.Contains(string(env.Response), user.AccessToken) {
		t.Fatal("failed sign-in leaked the token")
	}

	// 3. Create a project.
	status, env = do(t, app, "POST", boardPath(user.UserID, "/addProject"), user.AccessToken,
		map[string]string{"name": "Birthday Bash", "due_date": "2024-05-01"})
	if status != http.StatusOK {
		t.Fatalf("addProject: status %d, body %s", status, env.Response)
	}
	project := decode[projectBody](t, env)
	if project.ID == "" || project.UserID != user.UserID {
		t.Fatalf("unexpected project: %+v", project)
	}

	// 4. Add a guest with a numeric phone.
	status, env = do(t, app, "POST", boardPath(user.UserID, "/", project.ID, "/addGuest"), user.AccessToken,
		map[string]any{"guestName": "Sam", "phone": 5551234})
	if status != http.StatusOK {
		t.Fatalf("addGuest: status %d, body %s", status, env.Response)
	}
	withGuest := decode[projectBody](t, env)
	if len(withGuest.Guests) != 1 || withGuest.Guests[0].Phone != "5551234" {
		t.Fatalf("unexpected guests: %+v", withGuest.Guests)
	}

	// 5. Delete the project; a later fetch is not found.
	status, env = do(t, app, "DELETE", boardPath(user.UserID, "/delete/", project.ID), user.AccessToken, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: status %d, body %s", status, env.Response)
	}
	status, env = do(t, app, "GET", boardPath(user.UserID, "/", project.ID), user.AccessToken, nil)
	if status != http.StatusNotFound || env.Error != "not found" {
		t.Fatalf("fetch after delete: status %d, envelope %+v", status, env)
	}
}

func TestAuthGate(t *testing.T) {
	app := newTestServer(t)
	user := signUp(t, app, "gate@example.com")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + user.AccessToken, http.StatusUnauthorized},
		{"unknown token", "Bearer " + strings.Repeat("0", 64), http.StatusUnauthorized},
		{"valid token", "Bearer " + user.AccessToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/themes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestAuthGate_StoreFailure(t *testing.T) {
	app, db := newTestServerWithDB(t)
	user := signUp(t, app, "outage@example.com")
	database.Close(db)

	status, env := do(t, app, "GET", "/themes", user.AccessToken, nil)
	if status != http.StatusInternalServerError || env.Success {
		t.Fatalf("lookup failure: status %d, envelope %+v", status, env)
	}
	if env.Error != "service error" {
		t.Fatalf("lookup failure: error kind %q, want service error", env.Error)
	}

	// A malformed header never reaches the store and stays a 401.
	req := httptest.NewRequest("GET", "/themes", nil)
	req.Header.Set("Authorization", "Bearer")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bare Bearer header: status %d, want 401", resp.StatusCode)
	}
}

func TestHealth_Degraded(t *testing.T) {
	app, db := newTestServerWithDB(t)
	database.Close(db)

	status, env := do(t, app, "GET", "/health", "", nil)
	if status != http.StatusServiceUnavailable || env.Success {
		t.Fatalf("degraded health: status %d, envelope %+v", status, env)
	}
	if env.Error != "service error" {
		t.Fatalf("degraded health: error kind %q, want service error", env.Error)
	}
	if health := decode[map[string]string](t, env); health["db"] != "unhealthy" {
		t.Fatalf("degraded health body: %v", health)
	}
}

func TestSignUp_Errors(t *testing.T) {
	app := newTestServer(t)
	signUp(t, app, "taken@example.com")

	status, env := do(t, app, "POST", "/signUp", "", map[string]string{"email": "taken@example.com", "password": "password1"})
	if status != http.StatusConflict || env.Error != "conflict" {
		t.Fatalf("duplicate: status %d, envelope %+v", status, env)
	}

	status, _ = do(t, app, "POST", "/signUp", "", map[string]string{"email": "short@example.com", "password": "short"})
	if status != http.StatusBadRequest {
		t.Fatalf("short password: status %d", status)
	}

	status, env = do(t, app, "POST", "/signIn", "", map[string]string{"email": "ghost@example.com", "password": "password1"})
	if status != http.StatusBadRequest {
		t.Fatalf("unknown email: status %d", status)
	}
	var msg string
	json.Unmarshal(env.Response, &msg)
	if msg != "invalid email or password" {
		t.Fatalf("unknown email message = %q", msg)
	}
}

func TestProjects_ForeignUser(t *testing.T) {
	app := newTestServer(t)
	owner := signUp(t, app, "owner@example.com")
	intruder := signUp(t, app, "intruder@example.com")

	_, env := do(t, app, "POST", boardPath(owner.UserID, "/addProject"), owner.AccessToken,
		map[string]string{"name": "Owner Party", "due_date": "tomorrow"})
	project := decode[projectBody](t, env)

	// Intruder addresses the owner's board directly.
	status, _ := do(t, app, "GET", boardPath(owner.UserID, "/", project.ID), intruder.AccessToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("foreign board: status %d, want 404", status)
	}

	// Intruder uses their own board with the owner's project id.
	status, _ = do(t, app, "GET", boardPath(intruder.UserID, "/", project.ID), intruder.AccessToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("foreign project: status %d, want 404", status)
	}
	status, _ = do(t, app, "DELETE", boardPath(intruder.UserID, "/delete/", project.ID), intruder.AccessToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("foreign delete: status %d, want 404", status)
	}
	status, _ = do(t, app, "PATCH", boardPath(intruder.UserID, "/", project.ID), intruder.AccessToken,
		map[string]string{"name": "Hijacked Party"})
	if status != http.StatusNotFound {
		t.Fatalf("foreign update: status %d, want 404", status)
	}

	// The owner still sees the untouched project.
	status, env = do(t, app, "GET", boardPath(owner.UserID, "/", project.ID), owner.AccessToken, nil)
	if status != http.StatusOK || decode[projectBody](t, env).Name != "Owner Party" {
		t.Fatalf("owner fetch: status %d, body %s", status, env.Response)
	}

	status, env = do(t, app, "GET", boardPath(intruder.UserID), intruder.AccessToken, nil)
	if status != http.StatusOK || string(env.Response) != "[]" {
		t.Fatalf("intruder list: status %d, body %s", status, env.Response)
	}
}

func TestProjects_UpdateAndValidation(t *testing.T) {
	app := newTestServer(t)
	user := signUp(t, app, "editor@example.com")

	status, _ := do(t, app, "POST", boardPath(user.UserID, "/addProject"), user.AccessToken,
		map[string]string{"name": "Tiny"})
	if status != http.StatusBadRequest {
		t.Fatalf("invalid create: status %d", status)
	}

	_, env := do(t, app, "POST", boardPath(user.UserID, "/addProject"), user.AccessToken,
		map[string]string{"name": "Garden Party", "due_date": "June"})
	project := decode[projectBody](t, env)

	status, env = do(t, app, "PATCH", boardPath(user.UserID, "/", project.ID), user.AccessToken,
		map[string]string{"due_date": "July"})
	if status != http.StatusOK {
		t.Fatalf("update: status %d, body %s", status, env.Response)
	}
	updated := decode[projectBody](t, env)
	if updated.Name != "Garden Party" || updated.DueDate != "July" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	status, _ = do(t, app, "PATCH", boardPath(user.UserID, "/", project.ID), user.AccessToken, map[string]string{})
	if status != http.StatusBadRequest {
		t.Fatalf("empty update: status %d", status)
	}

	status, env = do(t, app, "GET", boardPath(user.UserID, "/not-a-uuid"), user.AccessToken, nil)
	if status != http.StatusBadRequest || env.Error != "validation error" {
		t.Fatalf("invalid id: status %d, envelope %+v", status, env)
	}
}

func TestGuests_RoundTripAndErrors(t *testing.T) {
	app := newTestServer(t)
	user := signUp(t, app, "host@example.com")

	_, env := do(t, app, "POST", boardPath(user.UserID, "/addProject"), user.AccessToken,
		map[string]string{"name": "Dinner Party", "due_date": "Friday"})
	project := decode[projectBody](t, env)

	_, env = do(t, app, "POST", boardPath(user.UserID, "/", project.ID, "/addGuest"), user.AccessToken,
		map[string]string{"guestName": "Ana", "phone": "+44 20 7946 0000"})
	guestID := decode[projectBody](t, env).Guests[0].ID

	status, env := do(t, app, "DELETE", boardPath(user.UserID, "/", project.ID, "/delete/", guestID), user.AccessToken, nil)
	if status != http.StatusOK {
		t.Fatalf("remove guest: status %d, body %s", status, env.Response)
	}
	if guests := decode[projectBody](t, env).Guests; len(guests) != 0 {
		t.Fatalf("expected empty guest list, got %+v", guests)
	}

	var msg string
	status, env = do(t, app, "DELETE", boardPath(user.UserID, "/", project.ID, "/delete/", guestID), user.AccessToken, nil)
	json.Unmarshal(env.Response, &msg)
	if status != http.StatusNotFound || msg != "guest not found" {
		t.Fatalf("missing guest: status %d, message %q", status, msg)
	}

	missingProject := "00000000-0000-0000-0000-000000000001"
	status, env = do(t, app, "DELETE", boardPath(user.UserID, "/", missingProject, "/delete/", guestID), user.AccessToken, nil)
	json.Unmarshal(env.Response, &msg)
	if status != http.StatusNotFound || msg != "project not found" {
		t.Fatalf("missing project: status %d, message %q", status, msg)
	}
}

func TestCatalog(t *testing.T) {
	app := newTestServer(t)
	user := signUp(t, app, "browser@example.com")

	for _, collection := range []string{"/themes", "/decorations", "/food", "/drinks", "/activities"} {
		status, env := do(t, app, "GET", collection, user.AccessToken, nil)
		if status != http.StatusOK {
			t.Fatalf("GET %s: status %d", collection, status)
		}
		if items := decode[[]map[string]any](t, env); len(items) == 0 {
			t.Fatalf("GET %s: expected seeded items", collection)
		}
	}

	status, env := do(t, app, "GET", "/themes/type/adults", user.AccessToken, nil)
	if status != http.StatusOK || len(decode[[]map[string]any](t, env)) != 3 {
		t.Fatalf("filter: status %d, body %s", status, env.Response)
	}

	status, env = do(t, app, "GET", "/drinks/type/nothing-matches", user.AccessToken, nil)
	if status != http.StatusOK || string(env.Response) != "[]" {
		t.Fatalf("empty filter: status %d, body %s", status, env.Response)
	}

	status, env = do(t, app, "GET", "/food/not-a-uuid", user.AccessToken, nil)
	var msg string
	json.Unmarshal(env.Response, &msg)
	if status != http.StatusBadRequest || msg != "invalid id" {
		t.Fatalf("invalid id: status %d, message %q", status, msg)
	}
	status, _ = do(t, app, "GET", "/food/00000000-0000-0000-0000-000000000001", user.AccessToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown id: status %d", status)
	}
}

func TestAccount_ChangePasswordAndDelete(t *testing.T) {
	app := newTestServer(t)
	user := signUp(t, app, "mover@example.com")

	_, env := do(t, app, "POST", boardPath(user.UserID, "/addProject"), user.AccessToken,
		map[string]string{"name": "Farewell Party", "due_date": "later"})
	project := decode[projectBody](t, env)

	status, _ := do(t, app, "PATCH", "/"+user.UserID+"/admin/change", user.AccessToken,
		map[string]string{"password": "wrong-one", "newPassword": "password2"})
	if status != http.StatusBadRequest {
		t.Fatalf("change with wrong password: status %d", status)
	}
	status, env = do(t, app, "PATCH", "/"+user.UserID+"/admin/change", user.AccessToken,
		map[string]string{"password": "password1", "newPassword": "password2"})
	if status != http.StatusOK {
		t.Fatalf("change password: status %d, body %s", status, env.Response)
	}

	status, _ = do(t, app, "POST", "/signIn", "", map[string]string{"email": "mover@example.com", "password": "password2"})
	if status != http.StatusOK {
		t.Fatalf("sign in with new password: status %d", status)
	}

	status, _ = do(t, app, "DELETE", "/"+user.UserID+"/admin/delete", user.AccessToken, map[string]string{"password": "password1"})
	if status != http.StatusBadRequest {
		t.Fatalf("delete with old password: status %d", status)
	}
	status, env = do(t, app, "DELETE", "/"+user.UserID+"/admin/delete", user.AccessToken, map[string]string{"password": "password2"})
	if status != http.StatusOK {
		t.Fatalf("delete account: status %d, body %s", status, env.Response)
	}

	// The token died with the account.
	status, _ = do(t, app, "GET", boardPath(user.UserID, "/", project.ID), user.AccessToken, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("request after account deletion: status %d, want 401", status)
	}
}

func TestAccount_AdminDeletesOtherUser(t *testing.T) {
	app := newTestServer(t)
	admin := signUp(t, app, "admin@example.com")
	target := signUp(t, app, "target@example.com")
	bystander := signUp(t, app, "bystander@example.com")

	status, _ := do(t, app, "DELETE", "/"+target.UserID+"/admin/delete", bystander.AccessToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("non-admin deleting another account: status %d, want 404", status)
	}

	status, env := do(t, app, "DELETE", "/"+target.UserID+"/admin/delete", admin.AccessToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin delete: status %d, body %s", status, env.Response)
	}

	status, _ = do(t, app, "POST", "/signIn", "", map[string]string{"email": "target@example.com", "password": "password1"})
	if status != http.StatusBadRequest {
		t.Fatalf("deleted account sign-in: status %d", status)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestServer(t)

	status, env := do(t, app, "GET", "/health", "", nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("health: status %d, envelope %+v", status, env)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "http_requests_total") {
		t.Fatalf("metrics: status %d", resp.StatusCode)
	}
}

func TestUnknownRoute_UsesEnvelope(t *testing.T) {
	app := newTestServer(t)
	user := signUp(t, app, "lost@example.com")

	status, env := do(t, app, "GET", "/nowhere/at/all/really", user.AccessToken, nil)
	if status != http.StatusNotFound || env.Success {
		t.Fatalf("unknown route: status %d, envelope %+v", status, env)
	}
}

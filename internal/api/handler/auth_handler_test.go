package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestRegisterRedirectsToLogin(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.postForm(t, "/register", url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})

	assertRedirect(t, w, "/login")

	user, err := env.userRepo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
	if user.HashedPassword == "pw1" {
		t.Fatal("password was stored in plaintext")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	w := env.postForm(t, "/register", form)
	assertRedirect(t, w, "/login")

	first, err := env.userRepo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("first user missing: %v", err)
	}

	// Second attempt with the same username, different password
	w = env.postForm(t, "/register", url.Values{
		"username": {"alice"},
		"password": {"other"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Username already taken") {
		t.Fatalf("expected error message in body, got: %s", w.Body.String())
	}

	// First user's row is unaffected
	again, err := env.userRepo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("first user gone after duplicate attempt: %v", err)
	}
	if again.ID != first.ID || again.HashedPassword != first.HashedPassword {
		t.Fatal("first user's row changed after duplicate registration")
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	env.postForm(t, "/register", form)

	w := env.postForm(t, "/login", form)
	assertRedirect(t, w, "/")

	cookie := sessionCookie(t, w)
	if cookie.Value == "" {
		t.Fatal("session cookie is empty")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie is not HttpOnly")
	}

	// The cookie resolves back to the user
	user, err := env.authService.ResolveSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("failed to resolve session: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("session resolved to %q, expected alice", user.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.postForm(t, "/register", url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})

	w := env.postForm(t, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			t.Fatal("session cookie set despite failed login")
		}
	}
}

func TestLoginUnknownUser(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.postForm(t, "/login", url.Values{
		"username": {"nobody"},
		"password": {"pw1"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	cookie := env.registerAndLogin(t, "alice", "pw1")

	w := env.get(t, "/logout", cookie)
	assertRedirect(t, w, "/login")

	cleared := sessionCookie(t, w)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout did not clear the session cookie: value=%q maxage=%d", cleared.Value, cleared.MaxAge)
	}
}

func TestLoginAndRegisterPagesRender(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	for _, path := range []string{"/login", "/register"} {
		w := env.get(t, path)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<form") {
			t.Fatalf("GET %s: expected a form in the body", path)
		}
	}
}

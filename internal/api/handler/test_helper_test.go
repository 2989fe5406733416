package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskdeck/internal/api/middleware"
	"github.com/martijn/taskdeck/internal/core/repository"
	"github.com/martijn/taskdeck/internal/core/service"
	"github.com/martijn/taskdeck/internal/infrastructure/sqlite"
	"github.com/martijn/taskdeck/internal/web"
)

// testEnv holds all test dependencies
type testEnv struct {
	db          *sqlite.DB
	router      *gin.Engine
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	authService *service.AuthService
	taskService *service.TaskService
}

// setupTestEnv creates a test environment with an in-memory SQLite
// database and the full production route table.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Use in-memory SQLite database
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Create repositories
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)

	// Create services
	authService := service.NewAuthService(userRepo, "test-secret", "HS256")
	taskService := service.NewTaskService(taskRepo)

	// Create handlers
	authHandler := NewAuthHandler(authService)
	taskHandler := NewTaskHandler(taskService)

	// Setup gin router in test mode, mirroring the server wiring
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.SessionMiddleware(authService))
	router.SetHTMLTemplate(web.Templates())

	router.GET("/login", authHandler.LoginPage)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/", taskHandler.Index)

	requireUser := middleware.RequireUser()
	router.POST("/add", requireUser, taskHandler.Add)
	router.GET("/delete/:id", requireUser, taskHandler.Delete)
	router.GET("/complete/:id", requireUser, taskHandler.Complete)

	return &testEnv{
		db:          db,
		router:      router,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		authService: authService,
		taskService: taskService,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// get performs a GET request, optionally with a session cookie
func (env *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST, optionally with a session cookie
func (env *testEnv) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the session cookie from a response, failing the
// test if none was set
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

// registerAndLogin registers a user and returns a logged-in session cookie
func (env *testEnv) registerAndLogin(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}

	w := env.postForm(t, "/register", form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register %s: expected status %d, got %d", username, http.StatusSeeOther, w.Code)
	}

	w = env.postForm(t, "/login", form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("login %s: expected status %d, got %d", username, http.StatusSeeOther, w.Code)
	}

	return sessionCookie(t, w)
}

// assertRedirect checks for a 303 redirect to the given location
func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d\nBody: %s", http.StatusSeeOther, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

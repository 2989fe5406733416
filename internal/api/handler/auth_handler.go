package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskdeck/internal/api/dto"
	"github.com/martijn/taskdeck/internal/api/middleware"
	"github.com/martijn/taskdeck/internal/core/service"
)

const sessionCookieMaxAge = service.SessionExpirationDays * 24 * 60 * 60

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Username and password are required",
		})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"Error": "Username already taken",
			})
			return
		}
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Incorrect username or password",
		})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Error": "Incorrect username or password",
			})
			return
		}
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"pinhub/internal/middleware"
	"pinhub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		accounts: services.NewAccountService(),
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if name == "" || !strings.Contains(email, "@") {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error": "Name and a valid email are required.",
			"Name":  name, "Email": email,
		})
		return
	}
	if len(password) < 6 {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error": "Password must be at least 6 characters.",
			"Name":  name, "Email": email,
		})
		return
	}

	_, err := h.accounts.Register(name, email, password)
	if errors.Is(err, services.ErrEmailTaken) {
		Render(c, http.StatusConflict, "auth/register.html", gin.H{
			"Error": "This email address is already in use.",
			"Name":  name, "Email": email,
		})
		return
	}
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{
			"Error": "Registration failed, please try again.",
		})
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Success": "Registration successful! Please check your email to confirm your account.",
	})
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")

	_, err := h.accounts.ConfirmEmail(token)
	switch {
	case errors.Is(err, services.ErrAlreadyConfirmed):
		Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Success": "Email already confirmed. You can log in.",
		})
	case errors.Is(err, services.ErrInvalidToken):
		RenderError(c, http.StatusBadRequest, "This confirmation link is invalid or was already used.")
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Confirmation failed, please try again.")
	default:
		Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Success": "Email confirmed successfully. You can now log in.",
		})
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	rememberMe := c.PostForm("remember_me") == "on"

	user, err := h.accounts.Authenticate(email, password)
	if errors.Is(err, services.ErrNotConfirmed) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": "Email not confirmed. Please check your inbox.",
			"Email": email,
		})
		return
	}
	if err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": "Invalid email or password.",
			"Email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	session.Set(middleware.SessionUserName, user.Name)
	session.Set(middleware.SessionUserImage, user.ProfileImagePath)
	session.Save()

	if rememberMe {
		middleware.SetRemember(c, user)
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	// Without this the remember cookies would log the user straight
	// back in on the next request.
	middleware.ClearRemember(c)

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowForgotPassword(c *gin.Context) {
	Render(c, http.StatusOK, "auth/forgot_password.html", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	err := h.accounts.ForgotPassword(email)
	if errors.Is(err, services.ErrNotFound) {
		Render(c, http.StatusBadRequest, "auth/forgot_password.html", gin.H{
			"Error": "Email not found.",
		})
		return
	}
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/forgot_password.html", gin.H{
			"Error": "Could not send reset email, please try again.",
		})
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Success": "Password reset link sent to your email.",
	})
}

func (h *AuthHandler) ShowResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		RenderError(c, http.StatusBadRequest, "Missing reset token.")
		return
	}
	Render(c, http.StatusOK, "auth/reset_password.html", gin.H{"Token": token})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.PostForm("token")
	newPassword := c.PostForm("password")

	if len(newPassword) < 6 {
		Render(c, http.StatusBadRequest, "auth/reset_password.html", gin.H{
			"Error": "Password must be at least 6 characters.",
			"Token": token,
		})
		return
	}

	err := h.accounts.ResetPassword(token, newPassword)
	if errors.Is(err, services.ErrInvalidToken) {
		Render(c, http.StatusBadRequest, "auth/forgot_password.html", gin.H{
			"Error": "Invalid or expired token. Please request a new link.",
		})
		return
	}
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/reset_password.html", gin.H{
			"Error": "Reset failed, please try again.",
			"Token": token,
		})
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Success": "Password reset successfully. You can now log in.",
	})
}

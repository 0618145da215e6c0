package handlers

import (
	"errors"
	"net/http"

	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/services"
	"pinhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	accounts *services.AccountService
	social   *services.SocialService
	feed     *services.FeedService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		accounts: services.NewAccountService(),
		social:   services.NewSocialService(),
		feed:     services.NewFeedService(),
	}
}

// Panel - GET /admin, lists users (with search), pins, boards and reports
func (h *AdminHandler) Panel(c *gin.Context) {
	search := c.Query("user_search")

	usersQuery := db.DB.Order("id ASC")
	if search != "" {
		pattern := "%" + search + "%"
		usersQuery = usersQuery.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	var users []models.User
	usersQuery.Find(&users)

	var pins []models.Pin
	db.DB.Preload("User").Order("id DESC").Find(&pins)

	var boards []models.Board
	db.DB.Preload("User").Order("id DESC").Find(&boards)

	var reports []models.PinReport
	db.DB.Preload("Pin").Preload("User").Order("id DESC").Find(&reports)

	Render(c, http.StatusOK, "admin/panel.html", gin.H{
		"Title":      "Admin",
		"Users":      users,
		"Pins":       pins,
		"Boards":     boards,
		"Reports":    reports,
		"UserSearch": search,
	})
}

// Dashboard - GET /admin/dashboard, aggregate counts and leaderboards
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.feed.Dashboard()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load dashboard.")
		return
	}

	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":       "Dashboard",
		"UserCount":   stats.UserCount,
		"PinCount":    stats.PinCount,
		"BoardCount":  stats.BoardCount,
		"ReportCount": stats.ReportCount,
		"TopUsers":    stats.TopUsers,
		"TopPins":     stats.TopPins,
		"TopBoards":   stats.TopBoards,
	})
}

func (h *AdminHandler) ShowAddUser(c *gin.Context) {
	Render(c, http.StatusOK, "admin/user_add.html", nil)
}

// AddUser - POST /admin/users/new, created confirmed, optionally admin
func (h *AdminHandler) AddUser(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	isAdmin := c.PostForm("is_admin") == "on"

	if name == "" || email == "" || len(password) < 6 {
		Render(c, http.StatusBadRequest, "admin/user_add.html", gin.H{
			"Error": "Name, email and a password of at least 6 characters are required.",
		})
		return
	}

	_, err := h.accounts.CreateUser(name, email, password, isAdmin)
	if errors.Is(err, services.ErrEmailTaken) {
		Render(c, http.StatusConflict, "admin/user_add.html", gin.H{
			"Error": "This email address is already in use.",
		})
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create user.")
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

func (h *AdminHandler) ShowEditUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		RenderNotFound(c)
		return
	}

	Render(c, http.StatusOK, "admin/user_edit.html", gin.H{"User": user})
}

// EditUser - POST /admin/users/:id/edit, the only path that can grant
// or revoke the admin flag
func (h *AdminHandler) EditUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	name := c.PostForm("name")
	email := c.PostForm("email")
	isAdmin := c.PostForm("is_admin") == "on"

	err := h.accounts.UpdateUser(userID, name, email, isAdmin)
	switch {
	case errors.Is(err, services.ErrNotFound):
		RenderNotFound(c)
	case errors.Is(err, services.ErrEmailTaken):
		var user models.User
		db.DB.First(&user, userID)
		Render(c, http.StatusConflict, "admin/user_edit.html", gin.H{
			"Error": "This email address is already in use.",
			"User":  user,
		})
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not update user.")
	default:
		c.Redirect(http.StatusFound, "/admin")
	}
}

// DeleteUser - POST /admin/users/:id/delete. Admin accounts are refused.
// Image files are removed only once the transaction has committed.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	imagePaths, err := h.accounts.DeleteUser(userID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		RenderNotFound(c)
	case errors.Is(err, services.ErrAdminProtected):
		RenderError(c, http.StatusForbidden, "Admin accounts cannot be deleted.")
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not delete user.")
	default:
		for _, path := range imagePaths {
			services.RemoveUpload(path)
		}
		c.Redirect(http.StatusFound, "/admin")
	}
}

// DeletePin - POST /admin/pins/:id/delete, full referential cleanup plus
// the image file once the transaction has committed
func (h *AdminHandler) DeletePin(c *gin.Context) {
	pinID := utils.StringToUint(c.Param("id"))

	imagePath, err := h.social.DeletePin(pinID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		RenderNotFound(c)
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not delete pin.")
	default:
		services.RemoveUpload(imagePath)
		c.Redirect(http.StatusFound, "/admin")
	}
}

// DeleteBoard - POST /admin/boards/:id/delete
func (h *AdminHandler) DeleteBoard(c *gin.Context) {
	boardID := utils.StringToUint(c.Param("id"))

	err := h.social.DeleteBoard(boardID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		RenderNotFound(c)
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not delete board.")
	default:
		c.Redirect(http.StatusFound, "/admin")
	}
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"pinhub/internal/db"
	"pinhub/internal/middleware"
	"pinhub/internal/models"
	"pinhub/internal/services"
	"pinhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	social *services.SocialService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{social: services.NewSocialService()}
}

// Profile - GET /u/:id, or the actor's own profile at /profile
func (h *UserHandler) Profile(c *gin.Context) {
	current := middleware.CurrentUser(c)

	var userID uint
	if raw := c.Param("id"); raw != "" {
		userID = utils.StringToUint(raw)
	} else {
		if current == nil {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		userID = current.ID
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		RenderNotFound(c)
		return
	}

	var pins []models.Pin
	db.DB.Where("user_id = ?", userID).Order("id DESC").Find(&pins)

	// Private boards are visible only to their owner
	boardsQuery := db.DB.Where("user_id = ?", userID)
	if current == nil || current.ID != userID {
		boardsQuery = boardsQuery.Where("is_private = ?", false)
	}
	var boards []models.Board
	boardsQuery.Order("id DESC").Find(&boards)

	var followersCount, followingCount int64
	db.DB.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&followersCount)
	db.DB.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&followingCount)

	isFollowing := false
	if current != nil && current.ID != userID {
		isFollowing = h.social.IsFollowing(current.ID, userID)
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":          user.Name,
		"User":           user,
		"Bio":            utils.RenderMarkdown(user.Bio),
		"Pins":           pins,
		"Boards":         boards,
		"PinCount":       len(pins),
		"FollowersCount": followersCount,
		"FollowingCount": followingCount,
		"IsFollowing":    isFollowing,
		"IsOwnProfile":   current != nil && current.ID == userID,
	})
}

// UpdateBio - POST /profile/bio
func (h *UserHandler) UpdateBio(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	bio := strings.TrimSpace(c.PostForm("bio"))

	if err := db.DB.Model(user).Update("bio", bio).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not update bio.")
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

// UpdateName - POST /profile/name
func (h *UserHandler) UpdateName(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	name := strings.TrimSpace(c.PostForm("name"))

	if name == "" {
		RenderError(c, http.StatusBadRequest, "Name cannot be empty.")
		return
	}

	if err := db.DB.Model(user).Update("name", name).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not update name.")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserName, name)
	session.Save()

	c.Redirect(http.StatusFound, "/profile")
}

// UploadPhoto - POST /profile/photo, replaces and removes the old file
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	file, header, err := c.Request.FormFile("profile_image")
	if err != nil {
		RenderError(c, http.StatusBadRequest, "An image file is required.")
		return
	}
	defer file.Close()

	imagePath, err := services.SaveUpload(file, header)
	if err != nil {
		log.Printf("Profile photo upload failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Upload failed, please try again.")
		return
	}

	oldPath := user.ProfileImagePath
	if err := db.DB.Model(user).Update("profile_image_path", imagePath).Error; err != nil {
		services.RemoveUpload(imagePath)
		RenderError(c, http.StatusInternalServerError, "Could not update profile photo.")
		return
	}
	services.RemoveUpload(oldPath)

	session := sessions.Default(c)
	session.Set(middleware.SessionUserImage, imagePath)
	session.Save()

	c.Redirect(http.StatusFound, "/profile")
}

// RemovePhoto - POST /profile/photo/remove
func (h *UserHandler) RemovePhoto(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if user.ProfileImagePath != "" {
		services.RemoveUpload(user.ProfileImagePath)
		if err := db.DB.Model(user).Update("profile_image_path", "").Error; err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not remove profile photo.")
			return
		}

		session := sessions.Default(c)
		session.Set(middleware.SessionUserImage, "")
		session.Save()
	}

	c.Redirect(http.StatusFound, "/profile")
}

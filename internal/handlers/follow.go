package handlers

import (
	"errors"
	"net/http"

	"pinhub/internal/db"
	"pinhub/internal/middleware"
	"pinhub/internal/models"
	"pinhub/internal/services"
	"pinhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	social *services.SocialService
}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{social: services.NewSocialService()}
}

// Follow - POST /follow/:id
func (h *FollowHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.Param("id"))

	err := h.social.Follow(user.ID, targetID)
	switch {
	case errors.Is(err, services.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You cannot follow yourself."})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Unfollow - POST /unfollow/:id, no-op when not following
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.Param("id"))

	if err := h.social.Unfollow(user.ID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Followers - GET /u/:id/followers
func (h *FollowHandler) Followers(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var followers []models.User
	db.DB.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Find(&followers)

	Render(c, http.StatusOK, "follow/list.html", gin.H{
		"Title": "Followers",
		"Users": followers,
	})
}

// Following - GET /u/:id/following
func (h *FollowHandler) Following(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var following []models.User
	db.DB.
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&following)

	Render(c, http.StatusOK, "follow/list.html", gin.H{
		"Title": "Following",
		"Users": following,
	})
}

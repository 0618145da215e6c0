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

type BoardHandler struct {
	social *services.SocialService
	feed   *services.FeedService
}

func NewBoardHandler() *BoardHandler {
	return &BoardHandler{
		social: services.NewSocialService(),
		feed:   services.NewFeedService(),
	}
}

// Index - GET /boards, the actor's boards six per page
func (h *BoardHandler) Index(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	page := utils.StringToInt(c.DefaultQuery("page", "1"))

	result, err := h.feed.ListBoards(user.ID, page)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load boards.")
		return
	}

	Render(c, http.StatusOK, "board/index.html", gin.H{
		"Title":       "Your boards",
		"Boards":      result.Boards,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
	})
}

func (h *BoardHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "board/create.html", nil)
}

func (h *BoardHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	title := c.PostForm("title")
	description := c.PostForm("description")
	isPrivate := c.PostForm("is_private") == "on"

	_, err := h.social.CreateBoard(user.ID, title, description, isPrivate)
	if errors.Is(err, services.ErrEmptyContent) {
		Render(c, http.StatusBadRequest, "board/create.html", gin.H{
			"Error":       "A title is required.",
			"Description": description,
		})
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create board.")
		return
	}

	c.Redirect(http.StatusFound, "/boards")
}

// ShowEdit - GET /boards/:id/edit, owner only
func (h *BoardHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	boardID := utils.StringToUint(c.Param("id"))

	var board models.Board
	if err := db.DB.Where("id = ? AND user_id = ?", boardID, user.ID).
		First(&board).Error; err != nil {
		RenderNotFound(c)
		return
	}

	Render(c, http.StatusOK, "board/edit.html", gin.H{
		"Title": "Edit board",
		"Board": board,
	})
}

// Edit - POST /boards/:id/edit, owner only
func (h *BoardHandler) Edit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	boardID := utils.StringToUint(c.Param("id"))

	title := c.PostForm("title")
	description := c.PostForm("description")
	isPrivate := c.PostForm("is_private") == "on"

	err := h.social.UpdateBoard(user.ID, boardID, title, description, isPrivate)
	switch {
	case errors.Is(err, services.ErrInvalidBoard):
		RenderNotFound(c)
	case errors.Is(err, services.ErrEmptyContent):
		Render(c, http.StatusBadRequest, "board/edit.html", gin.H{
			"Error": "A title is required.",
			"Board": models.Board{ID: boardID, Description: description},
		})
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not update board.")
	default:
		c.Redirect(http.StatusFound, "/boards")
	}
}

// Delete - POST /boards/:id/delete, owner or admin
func (h *BoardHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	boardID := utils.StringToUint(c.Param("id"))

	var board models.Board
	if err := db.DB.First(&board, boardID).Error; err != nil {
		RenderNotFound(c)
		return
	}
	if board.UserID != user.ID && !user.IsAdmin {
		RenderError(c, http.StatusForbidden, "You can only delete your own boards.")
		return
	}

	if err := h.social.DeleteBoard(boardID); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete board.")
		return
	}

	c.Redirect(http.StatusFound, "/boards")
}

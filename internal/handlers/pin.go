package handlers

import (
	"errors"
	"log"
	"net/http"

	"pinhub/internal/db"
	"pinhub/internal/middleware"
	"pinhub/internal/models"
	"pinhub/internal/services"
	"pinhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type PinHandler struct {
	social *services.SocialService
	feed   *services.FeedService
}

func NewPinHandler() *PinHandler {
	return &PinHandler{
		social: services.NewSocialService(),
		feed:   services.NewFeedService(),
	}
}

// Index - home grid of the latest pins, with an optional search box query
func (h *PinHandler) Index(c *gin.Context) {
	query := c.Query("q")

	pins, err := h.feed.LatestPins(query)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load pins.")
		return
	}

	Render(c, http.StatusOK, "pin/index.html", gin.H{
		"Title": "PinHub",
		"Pins":  pins,
		"Query": query,
	})
}

// Search - scoped search over pins and accounts
func (h *PinHandler) Search(c *gin.Context) {
	query := c.Query("q")
	scope := services.SearchScope(c.DefaultQuery("scope", string(services.SearchAll)))
	if scope != services.SearchPins && scope != services.SearchAccounts {
		scope = services.SearchAll
	}

	result, err := h.feed.Search(query, scope)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Search failed.")
		return
	}

	Render(c, http.StatusOK, "search.html", gin.H{
		"Title": "Search - " + query,
		"Query": query,
		"Scope": string(scope),
		"Pins":  result.Pins,
		"Users": result.Users,
	})
}

// Explore - popular / new / recommended discovery lists
func (h *PinHandler) Explore(c *gin.Context) {
	var viewerID uint
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = user.ID
	}

	result, err := h.feed.Explore(viewerID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load explore page.")
		return
	}

	Render(c, http.StatusOK, "pin/explore.html", gin.H{
		"Title":       "Explore",
		"Popular":     result.Popular,
		"New":         result.New,
		"Recommended": result.Recommended,
	})
}

// ShowCreate - pin upload form with the actor's boards for the save picker
func (h *PinHandler) ShowCreate(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var boards []models.Board
	db.DB.Where("user_id = ?", user.ID).Order("id DESC").Find(&boards)

	Render(c, http.StatusOK, "pin/create.html", gin.H{
		"Title":  "New Pin",
		"Boards": boards,
	})
}

func (h *PinHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")

	var boardIDs []uint
	for _, raw := range c.PostFormArray("board_ids") {
		if id := utils.StringToUint(raw); id != 0 {
			boardIDs = append(boardIDs, id)
		}
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.renderCreateError(c, user.ID, http.StatusBadRequest, "An image is required.")
		return
	}
	defer file.Close()

	imagePath, err := services.SaveUpload(file, header)
	if err != nil {
		log.Printf("Pin upload failed: %v", err)
		h.renderCreateError(c, user.ID, http.StatusInternalServerError, "Upload failed, please try again.")
		return
	}

	pin, err := h.social.CreatePin(user.ID, title, description, category, imagePath, boardIDs)
	if err != nil {
		// The file is already on disk; remove it so a failed insert
		// leaves nothing orphaned.
		services.RemoveUpload(imagePath)
		if errors.Is(err, services.ErrEmptyContent) {
			h.renderCreateError(c, user.ID, http.StatusBadRequest, "Title and image are required.")
			return
		}
		log.Printf("Pin create failed: %v", err)
		h.renderCreateError(c, user.ID, http.StatusInternalServerError, "Could not create pin.")
		return
	}

	c.Redirect(http.StatusFound, "/pins/"+utils.UintToString(pin.ID))
}

func (h *PinHandler) renderCreateError(c *gin.Context, userID uint, code int, msg string) {
	var boards []models.Board
	db.DB.Where("user_id = ?", userID).Order("id DESC").Find(&boards)
	Render(c, code, "pin/create.html", gin.H{"Error": msg, "Boards": boards})
}

// Detail - pin page with comments, like state, and the viewer's boards
func (h *PinHandler) Detail(c *gin.Context) {
	pinID := utils.StringToUint(c.Param("id"))

	var pin models.Pin
	if err := db.DB.Preload("User").First(&pin, pinID).Error; err != nil {
		RenderNotFound(c)
		return
	}

	var comments []models.PinComment
	db.DB.Preload("User").Where("pin_id = ?", pinID).Order("created_at ASC").Find(&comments)

	var likeCount int64
	db.DB.Model(&models.PinLike{}).Where("pin_id = ?", pinID).Count(&likeCount)
	pin.LikeCount = likeCount

	data := gin.H{
		"Title":       pin.Title,
		"Pin":         pin,
		"Comments":    comments,
		"Description": utils.RenderMarkdown(pin.Description),
	}

	if user := middleware.CurrentUser(c); user != nil {
		var boards []models.Board
		db.DB.Where("user_id = ?", user.ID).Order("id DESC").Find(&boards)
		data["Boards"] = boards

		var liked int64
		db.DB.Model(&models.PinLike{}).
			Where("pin_id = ? AND user_id = ?", pinID, user.ID).Count(&liked)
		data["IsLiked"] = liked > 0
	}

	Render(c, http.StatusOK, "pin/detail.html", data)
}

// Like - POST /pins/:id/like
func (h *PinHandler) Like(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pinID := utils.StringToUint(c.Param("id"))

	err := h.social.LikePin(user.ID, pinID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pin not found."})
	case errors.Is(err, services.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "You have already liked this pin."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Unlike - POST /pins/:id/unlike
func (h *PinHandler) Unlike(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pinID := utils.StringToUint(c.Param("id"))

	err := h.social.UnlikePin(user.ID, pinID)
	switch {
	case errors.Is(err, services.ErrLikeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Like not found."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Save - POST /pins/:id/save, links the pin into one of the actor's boards
func (h *PinHandler) Save(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pinID := utils.StringToUint(c.Param("id"))
	boardID := utils.StringToUint(c.PostForm("board_id"))

	err := h.social.SavePinToBoard(user.ID, pinID, boardID)
	switch {
	case errors.Is(err, services.ErrInvalidBoard):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid board."})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pin not found."})
	case errors.Is(err, services.ErrAlreadySaved):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "This pin already exists in this board."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// AddComment - POST /pins/:id/comments
func (h *PinHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pinID := utils.StringToUint(c.Param("id"))
	content := utils.SanitizeText(c.PostForm("content"))

	_, err := h.social.AddComment(user.ID, pinID, content)
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		Render(c, http.StatusBadRequest, "error.html", gin.H{"Error": "Comment can not be empty."})
	case errors.Is(err, services.ErrNotFound):
		RenderNotFound(c)
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not add comment.")
	default:
		c.Redirect(http.StatusFound, "/pins/"+c.Param("id"))
	}
}

// Report - POST /pins/:id/report
func (h *PinHandler) Report(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pinID := utils.StringToUint(c.Param("id"))
	reason := utils.SanitizeText(c.PostForm("reason"))

	err := h.social.ReportPin(user.ID, pinID, reason)
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A reason is required."})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pin not found."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

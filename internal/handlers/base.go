package handlers

import (
	"net/http"
	"pinhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render injects common variables (current user, current path) before
// handing off to the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// RenderNotFound is the common missing-entity response.
func RenderNotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found.")
}

package middleware

import (
	"net/http"
	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// Session keys (fast path) and the persistent "remember me" cookie names
// (durable fallback). The cookies survive session expiry for 14 days.
const (
	SessionUserID    = "user_id"
	SessionUserName  = "user_name"
	SessionUserImage = "profile_image"

	CookieUserID    = "UserId"
	CookieUserName  = "UserName"
	CookieUserImage = "ProfileImagePath"

	RememberMaxAge = 14 * 24 * 60 * 60
)

// LoadUser resolves the acting user for the request: session first, then
// the remember cookies. A cookie hit is written back into the session
// (read-repair) so later requests take the fast path. The user row is
// always loaded fresh so admin revocation applies on the next request.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserID)

		if userID == nil {
			if id := restoreFromCookies(c, session); id != 0 {
				userID = id
			}
		}

		if userID != nil {
			var user models.User
			if err := db.DB.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

func restoreFromCookies(c *gin.Context, session sessions.Session) uint {
	raw, err := c.Cookie(CookieUserID)
	if err != nil {
		return 0
	}
	id := utils.StringToUint(raw)
	if id == 0 {
		return 0
	}

	session.Set(SessionUserID, id)
	if name, err := c.Cookie(CookieUserName); err == nil && name != "" {
		session.Set(SessionUserName, name)
	}
	if img, err := c.Cookie(CookieUserImage); err == nil && img != "" {
		session.Set(SessionUserImage, img)
	}
	session.Save()
	return id
}

// AuthRequired ensures a user is logged in. Runs after LoadUser.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired gates moderation routes. Runs after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists || !u.(*models.User).IsAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user for the request, nil when anonymous.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// SetRemember writes the persistent login cookies.
func SetRemember(c *gin.Context, user *models.User) {
	c.SetCookie(CookieUserID, utils.UintToString(user.ID), RememberMaxAge, "/", "", false, true)
	c.SetCookie(CookieUserName, user.Name, RememberMaxAge, "/", "", false, true)
	c.SetCookie(CookieUserImage, user.ProfileImagePath, RememberMaxAge, "/", "", false, true)
}

// ClearRemember expires the persistent login cookies. Logout must call
// this, otherwise a stale cookie would resurrect the identity on the
// next request.
func ClearRemember(c *gin.Context) {
	c.SetCookie(CookieUserID, "", -1, "/", "", false, true)
	c.SetCookie(CookieUserName, "", -1, "/", "", false, true)
	c.SetCookie(CookieUserImage, "", -1, "/", "", false, true)
}

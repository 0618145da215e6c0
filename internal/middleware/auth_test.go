package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.Use(LoadUser())
	return r
}

func seedUser(t *testing.T, name string, isAdmin bool) *models.User {
	t.Helper()
	user := models.User{
		Name:           name,
		Email:          name + "@example.com",
		PasswordHash:   "x",
		IsAdmin:        isAdmin,
		EmailConfirmed: true,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func TestLoadUserFromRememberCookie(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, "alice", false)

	r.GET("/whoami", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Name)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	// No session, only the persistent cookie: identity must be restored
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieUserID, Value: utils.UintToString(user.ID)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())

	// Read-repair: the response re-establishes the session cookie
	assert.Contains(t, w.Header().Get("Set-Cookie"), "test_session")
}

func TestLoadUserAnonymous(t *testing.T) {
	r := setupRouter(t)

	r.GET("/whoami", func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.String(http.StatusOK, "user")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestLoadUserIgnoresGarbageCookie(t *testing.T) {
	r := setupRouter(t)

	r.GET("/whoami", func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.String(http.StatusOK, "user")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieUserID, Value: "not-a-number"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestLoadUserStaleCookieForDeletedUser(t *testing.T) {
	r := setupRouter(t)

	r.GET("/whoami", func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.String(http.StatusOK, "user")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	// Cookie points at an account that no longer exists
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieUserID, Value: "9999"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestAuthRequiredRedirectsAnonymous(t *testing.T) {
	r := setupRouter(t)

	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAdminRequired(t *testing.T) {
	r := setupRouter(t)
	member := seedUser(t, "member", false)
	admin := seedUser(t, "admin", true)

	r.GET("/admin-only", AuthRequired(), AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieUserID, Value: utils.UintToString(member.ID)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieUserID, Value: utils.UintToString(admin.ID)})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClearRememberExpiresCookies(t *testing.T) {
	r := setupRouter(t)

	r.GET("/logout", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		session.Save()
		ClearRemember(c)
		c.String(http.StatusOK, "bye")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	cookies := w.Header().Values("Set-Cookie")
	expired := 0
	for _, raw := range cookies {
		for _, name := range []string{CookieUserID, CookieUserName, CookieUserImage} {
			if strings.HasPrefix(raw, name+"=") && strings.Contains(raw, "Max-Age=0") {
				expired++
			}
		}
	}
	assert.Equal(t, 3, expired, "all three remember cookies must be expired on logout")
}

func TestSetRememberWritesCookies(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, "alice", false)
	user.ProfileImagePath = "/uploads/alice.jpg"

	r.GET("/remember", func(c *gin.Context) {
		SetRemember(c, user)
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/remember", nil))

	joined := strings.Join(w.Header().Values("Set-Cookie"), "\n")
	assert.Contains(t, joined, CookieUserID+"="+utils.UintToString(user.ID))
	assert.Contains(t, joined, CookieUserName+"=alice")
	assert.Contains(t, joined, "Max-Age=1209600", "remember cookies last 14 days")
}

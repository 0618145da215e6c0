package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"pinhub/internal/db"
	"pinhub/internal/handlers"
	"pinhub/internal/middleware"
	"pinhub/internal/services"
	"pinhub/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("pinhub_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets & Uploaded Images
	r.Static("/static", "./web/static")
	r.Static("/uploads", services.UploadDir())

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler()
	pinHandler := handlers.NewPinHandler()
	boardHandler := handlers.NewBoardHandler()
	userHandler := handlers.NewUserHandler()
	followHandler := handlers.NewFollowHandler()
	adminHandler := handlers.NewAdminHandler()

	// Public Routes
	r.GET("/", pinHandler.Index)
	r.GET("/explore", pinHandler.Explore)
	r.GET("/search", pinHandler.Search)
	r.GET("/pins/:id", pinHandler.Detail)
	r.GET("/u/:id", userHandler.Profile)
	r.GET("/u/:id/followers", followHandler.Followers)
	r.GET("/u/:id/following", followHandler.Following)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/confirm", authHandler.ConfirmEmail)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/forgot-password", authHandler.ShowForgotPassword)
	r.POST("/forgot-password", authHandler.ForgotPassword)
	r.GET("/reset-password", authHandler.ShowResetPassword)
	r.POST("/reset-password", authHandler.ResetPassword)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/pins/new", pinHandler.ShowCreate)
		authorized.POST("/pins/new", pinHandler.Create)
		authorized.POST("/pins/:id/like", pinHandler.Like)
		authorized.POST("/pins/:id/unlike", pinHandler.Unlike)
		authorized.POST("/pins/:id/save", pinHandler.Save)
		authorized.POST("/pins/:id/comments", pinHandler.AddComment)
		authorized.POST("/pins/:id/report", pinHandler.Report)

		authorized.GET("/boards", boardHandler.Index)
		authorized.GET("/boards/new", boardHandler.ShowCreate)
		authorized.POST("/boards/new", boardHandler.Create)
		authorized.GET("/boards/:id/edit", boardHandler.ShowEdit)
		authorized.POST("/boards/:id/edit", boardHandler.Edit)
		authorized.POST("/boards/:id/delete", boardHandler.Delete)

		authorized.GET("/profile", userHandler.Profile)
		authorized.POST("/profile/bio", userHandler.UpdateBio)
		authorized.POST("/profile/name", userHandler.UpdateName)
		authorized.POST("/profile/photo", userHandler.UploadPhoto)
		authorized.POST("/profile/photo/remove", userHandler.RemovePhoto)

		authorized.POST("/follow/:id", followHandler.Follow)
		authorized.POST("/unfollow/:id", followHandler.Unfollow)
	}

	// Admin Routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Panel)
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/users/new", adminHandler.ShowAddUser)
		admin.POST("/users/new", adminHandler.AddUser)
		admin.GET("/users/:id/edit", adminHandler.ShowEditUser)
		admin.POST("/users/:id/edit", adminHandler.EditUser)
		admin.POST("/users/:id/delete", adminHandler.DeleteUser)
		admin.POST("/pins/:id/delete", adminHandler.DeletePin)
		admin.POST("/boards/:id/delete", adminHandler.DeleteBoard)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("PinHub server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"markdown": utils.RenderMarkdown,
	}

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)
	r.AddFromFilesFuncs("auth/forgot_password.html", funcMap, assemble(templatesDir+"/views/auth/forgot_password.html")...)
	r.AddFromFilesFuncs("auth/reset_password.html", funcMap, assemble(templatesDir+"/views/auth/reset_password.html")...)

	// Pins
	r.AddFromFilesFuncs("pin/index.html", funcMap, assemble(templatesDir+"/views/pin/index.html")...)
	r.AddFromFilesFuncs("pin/detail.html", funcMap, assemble(templatesDir+"/views/pin/detail.html")...)
	r.AddFromFilesFuncs("pin/create.html", funcMap, assemble(templatesDir+"/views/pin/create.html")...)
	r.AddFromFilesFuncs("pin/explore.html", funcMap, assemble(templatesDir+"/views/pin/explore.html")...)

	// Boards
	r.AddFromFilesFuncs("board/index.html", funcMap, assemble(templatesDir+"/views/board/index.html")...)
	r.AddFromFilesFuncs("board/create.html", funcMap, assemble(templatesDir+"/views/board/create.html")...)
	r.AddFromFilesFuncs("board/edit.html", funcMap, assemble(templatesDir+"/views/board/edit.html")...)

	// Users & Follows
	r.AddFromFilesFuncs("user/profile.html", funcMap, assemble(templatesDir+"/views/user/profile.html")...)
	r.AddFromFilesFuncs("follow/list.html", funcMap, assemble(templatesDir+"/views/follow/list.html")...)

	// Search
	r.AddFromFilesFuncs("search.html", funcMap, assemble(templatesDir+"/views/search.html")...)

	// Admin
	r.AddFromFilesFuncs("admin/panel.html", funcMap, assemble(templatesDir+"/views/admin/panel.html")...)
	r.AddFromFilesFuncs("admin/dashboard.html", funcMap, assemble(templatesDir+"/views/admin/dashboard.html")...)
	r.AddFromFilesFuncs("admin/user_add.html", funcMap, assemble(templatesDir+"/views/admin/user_add.html")...)
	r.AddFromFilesFuncs("admin/user_edit.html", funcMap, assemble(templatesDir+"/views/admin/user_edit.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}

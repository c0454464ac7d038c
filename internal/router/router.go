package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/handlers"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/types"
)

func New(h *handlers.Handler, tokens *auth.TokenManager) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireToken := middleware.RequireToken(tokens)

	r.GET("/", handlers.Welcome)

	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.GET("/check_session", requireToken, h.CheckSession)
	r.DELETE("/logout", requireToken, h.Logout)
	r.POST("/change_password", requireToken, h.ChangePassword)

	users := r.Group("/users")
	{
		users.GET("", h.ListMembers)
		users.POST("", h.CreateMember)
		users.GET("/:id", h.GetMember)
		users.PUT("/:id", h.UpdateMember)
		users.DELETE("/:id", h.DeleteMember)
	}

	projects := r.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", requireToken, h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
	}

	tasks := r.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", requireToken, h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	return r
}

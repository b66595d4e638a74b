package routes

import (
	"net/http"
	"time"

	"github.com/djmgmz/tdd-jest/config"
	"github.com/djmgmz/tdd-jest/handlers"
	"github.com/djmgmz/tdd-jest/middleware"
	"github.com/djmgmz/tdd-jest/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, model models.PostModel) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"storage": cfg.Storage.Driver,
			"time":    time.Now().Unix(),
		})
	})

	posts := handlers.NewPostController(model)
	router.POST("/posts", posts.Create)
	router.GET("/posts", posts.GetAllPosts)
	router.GET("/posts/:id", posts.FindPost)
	router.PUT("/posts/:id", posts.Update)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}

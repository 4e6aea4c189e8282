package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/store"
	"readtrack-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares. CurrentUser pins every request to the seeded
	// account while the app runs in single-user mode.
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.CurrentUser(store.SeedUserID),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupLibraryRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupSessionRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.GetBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", c.BookHandler.CreateBook)
		books.PATCH("/:id", c.BookHandler.UpdateBook)
	}

	v1.GET("/recommendations", c.BookHandler.GetRecommendations)
}

func setupLibraryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	userBooks := v1.Group("/user-books")
	{
		userBooks.GET("", c.LibraryHandler.GetUserBooks)
		userBooks.GET("/:bookId", c.LibraryHandler.GetUserBook)
		userBooks.POST("", c.LibraryHandler.AddUserBook)
		userBooks.PATCH("/:bookId", c.LibraryHandler.UpdateUserBook)
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.GetReviews)
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.POST("", c.ReviewHandler.CreateReview)
		reviews.PATCH("/:id", c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

func setupSessionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	sessions := v1.Group("/reading-sessions")
	{
		sessions.GET("", c.SessionHandler.GetSessions)
		sessions.POST("", c.SessionHandler.CreateSession)
		sessions.PATCH("/:id", c.SessionHandler.UpdateSession)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/users/me", c.UserHandler.GetCurrentUser)
	v1.GET("/stats", c.UserHandler.GetStats)

	prefs := v1.Group("/preferences")
	{
		prefs.GET("", c.UserHandler.GetPreferences)
		prefs.POST("", c.UserHandler.CreatePreferences)
		prefs.PATCH("", c.UserHandler.UpdatePreferences)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Store.Ping(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.Config.App.Version,
			"store":   c.Config.Store.Driver,
		})
	}
}

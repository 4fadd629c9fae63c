package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": c.Config.App.Name})
	})
	router.GET("/healthz", healthCheckHandler(c))

	setupCategoryRoutes(router, c)
	setupAuthorRoutes(router, c)
	setupBookRoutes(router, c)

	return router
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(router *gin.Engine, c *container.Container) {
	categories := router.Group("/categories")
	{
		categories.POST("", c.CategoryHandler.CreateCategory)
		categories.GET("", c.CategoryHandler.GetCategories)
		categories.GET("/:slug", c.CategoryHandler.GetCategoryDetail)
		categories.PATCH("/:slug", c.CategoryHandler.UpdateCategory)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	authors := router.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.CreateAuthor)
		authors.GET("", c.AuthorHandler.GetAuthors)
		authors.GET("/:slug", c.AuthorHandler.GetAuthorDetail)
		authors.PATCH("/:slug", c.AuthorHandler.UpdateAuthor)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/books")
	{
		books.POST("", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.GetBooks)
		books.GET("/:slug", c.BookHandler.GetBookDetail)
		books.PATCH("/:slug", c.BookHandler.UpdateBook)
		books.DELETE("/:slug", c.BookHandler.DeleteBook)
	}
}

// healthCheckHandler ping database, trả 503 khi mất kết nối
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "database unreachable",
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

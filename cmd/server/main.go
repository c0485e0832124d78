package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/delfruit/catalog/internal/auth"
	"github.com/delfruit/catalog/internal/catalog"
	"github.com/delfruit/catalog/internal/config"
	"github.com/delfruit/catalog/internal/database"
	"github.com/delfruit/catalog/internal/handler"
	"github.com/delfruit/catalog/internal/list"
	"github.com/delfruit/catalog/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "github.com/delfruit/catalog/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Delicious Fruit API
// @version         2.0
// @description     The API you should use instead of throwing your monitor out the window.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	games := handler.NewGameHandler(catalog.NewService(store.NewGameStore(database.DB)))
	lists := handler.NewListHandler(list.NewService(store.NewListStore(database.DB)))

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.OptionalMiddleware())
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Game routes: reads are public, identity only widens visibility
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", games.List)
			gameRoutes.GET("/:id", games.Get)

			// Mutations are admin-only
			adminGameRoutes := gameRoutes.Group("")
			adminGameRoutes.Use(auth.AdminMiddleware())
			{
				adminGameRoutes.POST("", games.Create)
				adminGameRoutes.PATCH("/:id", games.Patch)
				adminGameRoutes.DELETE("/:id", games.Delete)
			}
		}

		// List routes (require identity; ownership is checked per list)
		listRoutes := apiV1.Group("/lists")
		listRoutes.Use(auth.RequiredMiddleware())
		{
			listRoutes.POST("", lists.Create)
			listRoutes.PUT("/:listId/games", lists.AddGame)
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(router.Run(addr))
}

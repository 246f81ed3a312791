package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-recipe-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-recipe-api/internal/config"
	"github.com/franciscosanchezn/gin-recipe-api/internal/controllers"
	"github.com/franciscosanchezn/gin-recipe-api/internal/database"
	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                 *gorm.DB
	recipeController   controllers.RecipeController
	taxonomyController controllers.TaxonomyController
	userController     *controllers.UserController
	authController     *controllers.AuthController
	configuration      *config.Config
)

// @title Recipe API
// @version 1.0
// @description A recipe management API with per-user tags, ingredients and image upload
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	recipeService := services.NewRecipeService(db, services.NewImageValidator(), configuration.UploadDir)
	taxonomyService := services.NewTaxonomyService(db)
	userService := services.NewUserService(db)

	recipeController = controllers.NewRecipeController(recipeService)
	taxonomyController = controllers.NewTaxonomyController(taxonomyService)
	userController = controllers.NewUserController(userService)
	authController = controllers.NewAuthController(
		userService,
		configuration.JWTSecret,
		time.Duration(configuration.TokenExpirySecs)*time.Second,
	)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and runs schema migration
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Uploaded recipe images
	router.Static("/media", configuration.UploadDir)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes (requires JWT authentication)
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.GET("/recipes", recipeController.ListRecipes)
			protected.POST("/recipes", recipeController.CreateRecipe)
			protected.GET("/recipes/:id", recipeController.GetRecipeByID)
			protected.PATCH("/recipes/:id", recipeController.UpdateRecipe)
			protected.PUT("/recipes/:id", recipeController.ReplaceRecipe)
			protected.DELETE("/recipes/:id", recipeController.DeleteRecipe)
			protected.POST("/recipes/:id/image", recipeController.UploadRecipeImage)

			protected.GET("/tags", taxonomyController.ListTags)
			protected.PATCH("/tags/:id", taxonomyController.UpdateTag)
			protected.DELETE("/tags/:id", taxonomyController.DeleteTag)

			protected.GET("/ingredients", taxonomyController.ListIngredients)
			protected.PATCH("/ingredients/:id", taxonomyController.UpdateIngredient)
			protected.DELETE("/ingredients/:id", taxonomyController.DeleteIngredient)

			protected.GET("/users/me", userController.Me)
			protected.PATCH("/users/me", userController.UpdateMe)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireStaff())
			{
				admin.GET("/users", userController.ListUsers)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-recipe-api",
	})
}

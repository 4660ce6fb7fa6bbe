package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"studiodesk/internal/handler"
	mid "studiodesk/internal/middleware"
	"studiodesk/pkg/config"
	"studiodesk/pkg/database"
	"studiodesk/pkg/jwtutil"
	"studiodesk/pkg/logger"
	"studiodesk/prometheus"
)

func main() {
	// Load .env file. Missing files are fine; production environments set
	// real environment variables instead.
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting studiodesk",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwtutil.Initialize(&appConfig.JWT)
	handler.SetPricingDefaults(appConfig)

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", handler.Register)
	authAPI.POST("/login", handler.Login)

	// Client API routes
	clientAPI := e.Group("/api/clients", mid.AuthMiddleware)
	clientAPI.GET("", handler.ListClients)
	clientAPI.GET("/:id", handler.GetClient)
	clientAPI.POST("", handler.CreateClient)
	clientAPI.PUT("/:id", handler.UpdateClient)
	clientAPI.DELETE("/:id", handler.DeleteClient)

	// Materials catalog API routes
	catalogAPI := e.Group("/api/catalog", mid.AuthMiddleware)
	catalogAPI.GET("", handler.ListCatalogItems)
	catalogAPI.GET("/:id", handler.GetCatalogItem)
	catalogAPI.POST("", handler.CreateCatalogItem)
	catalogAPI.PUT("/:id", handler.UpdateCatalogItem)
	catalogAPI.DELETE("/:id", handler.DeleteCatalogItem)

	// Quotation API routes
	quotationAPI := e.Group("/api/quotations", mid.AuthMiddleware)
	quotationAPI.GET("", handler.ListQuotations)
	quotationAPI.GET("/:id", handler.GetQuotation)
	quotationAPI.POST("", handler.CreateQuotation)
	quotationAPI.PUT("/:id", handler.UpdateQuotation)
	quotationAPI.DELETE("/:id", handler.DeleteQuotation)
	quotationAPI.PUT("/:id/status", handler.UpdateQuotationStatus)
	quotationAPI.PUT("/:id/total", handler.SaveQuotationTotal)
	quotationAPI.GET("/:id/summary", handler.GetQuotationSummary)
	quotationAPI.GET("/:id/export", handler.ExportQuotation)
	quotationAPI.GET("/:id/rooms", handler.ListQuotationRooms)
	quotationAPI.POST("/:id/rooms", handler.CreateRoom)

	// Room API routes
	roomAPI := e.Group("/api/rooms", mid.AuthMiddleware)
	roomAPI.PUT("/:id", handler.UpdateRoom)
	roomAPI.DELETE("/:id", handler.DeleteRoom)
	roomAPI.GET("/:id/materials", handler.ListRoomMaterials)
	roomAPI.POST("/:id/materials", handler.AddRoomMaterial)

	// Room line-item API routes
	materialAPI := e.Group("/api/room-materials", mid.AuthMiddleware)
	materialAPI.PUT("/:id", handler.UpdateRoomMaterial)
	materialAPI.DELETE("/:id", handler.DeleteRoomMaterial)

	// Project API routes
	projectAPI := e.Group("/api/projects", mid.AuthMiddleware)
	projectAPI.GET("", handler.ListProjects)
	projectAPI.GET("/:id", handler.GetProject)
	projectAPI.POST("", handler.CreateProject)
	projectAPI.PUT("/:id", handler.UpdateProject)
	projectAPI.DELETE("/:id", handler.DeleteProject)
	projectAPI.GET("/:id/tasks", handler.ListProjectTasks)
	projectAPI.POST("/:id/tasks", handler.CreateTask)
	projectAPI.GET("/:id/expenses", handler.ListProjectExpenses)
	projectAPI.POST("/:id/expenses", handler.CreateExpense)
	projectAPI.GET("/:id/notes", handler.ListProjectNotes)
	projectAPI.POST("/:id/notes", handler.CreateNote)

	taskAPI := e.Group("/api/tasks", mid.AuthMiddleware)
	taskAPI.PUT("/:id", handler.UpdateTask)
	taskAPI.DELETE("/:id", handler.DeleteTask)

	expenseAPI := e.Group("/api/expenses", mid.AuthMiddleware)
	expenseAPI.PUT("/:id", handler.UpdateExpense)
	expenseAPI.DELETE("/:id", handler.DeleteExpense)

	noteAPI := e.Group("/api/notes", mid.AuthMiddleware)
	noteAPI.PUT("/:id", handler.UpdateNote)
	noteAPI.DELETE("/:id", handler.DeleteNote)

	// Dashboard API routes
	dashboardAPI := e.Group("/api/dashboard", mid.AuthMiddleware)
	dashboardAPI.GET("/stats", handler.GetDashboardStats)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

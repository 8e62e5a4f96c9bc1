package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dormhub_app_echo/internal/handlers"
	authMiddleware "dormhub_app_echo/internal/middleware"
	"dormhub_app_echo/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Firebase: auth plus the Firestore client backing every
	// application collection
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = "./firebase-service-account.json"
	}

	authClient, fsClient, err := services.InitFirebase(context.Background(), credPath)
	if err != nil {
		log.Fatalf("Firebase initialization failed: %v", err)
	}
	defer fsClient.Close()

	// Initialize Redis (optional: dashboard cache and report locks)
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			log.Println("Continuing without caching and report locks")
			cache = nil
		} else {
			defer cache.Close()
		}
	} else {
		log.Println("Warning: REDIS_URL not set, caching disabled")
	}

	// Stores and services
	userStore := services.NewUserStore(fsClient)
	paymentStore := services.NewPaymentStore(fsClient)
	reportStore := services.NewReportStore(fsClient)
	notifStore := services.NewNotificationStore(fsClient)
	requestStore := services.NewRequestStore(fsClient, notifStore)
	financeService := services.NewFinanceService(userStore, paymentStore)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = authMiddleware.JSONErrorHandler

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Initialize handlers
	financeHandler := handlers.NewFinanceHandler(financeService, reportStore, cache)
	paymentHandler := handlers.NewPaymentHandler(paymentStore)
	requestHandler := handlers.NewRequestHandler(requestStore)
	notifHandler := handlers.NewNotificationHandler(notifStore)
	userHandler := handlers.NewUserHandler(userStore)
	dashboardHandler := handlers.NewDashboardHandler(requestStore, cache)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Student routes
	api := e.Group("/api")
	api.Use(authMiddleware.RequireAuth(authClient))

	api.GET("/finance/me", financeHandler.MyProfile)
	api.GET("/finance/user-reports/:userId", financeHandler.UserReports)
	api.GET("/finance/reports/:reportId/download", financeHandler.DownloadReport)

	api.POST("/complaints", requestHandler.CreateComplaint)
	api.GET("/complaints", requestHandler.MyComplaints)
	api.POST("/maintenance", requestHandler.CreateMaintenanceRequest)
	api.GET("/maintenance", requestHandler.MyMaintenanceRequests)
	api.POST("/sleepovers", requestHandler.CreateSleepoverRequest)
	api.GET("/sleepovers", requestHandler.MySleepoverRequests)
	api.POST("/guests", requestHandler.CreateGuestRegistration)
	api.GET("/guests", requestHandler.MyGuestRegistrations)
	api.GET("/announcements", requestHandler.Announcements)

	api.GET("/notifications", notifHandler.MyNotifications)
	api.POST("/notifications/:id/read", notifHandler.MarkRead)
	api.POST("/notifications/read-all", notifHandler.MarkAllRead)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin(userStore))

	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)

	admin.GET("/finance/students/:key/profile", financeHandler.GetProfile)
	admin.POST("/finance/students/:key/reports", financeHandler.GenerateReport)
	admin.POST("/finance/students/:key/reports/document", financeHandler.UploadReportDocument)
	admin.POST("/finance/payments", paymentHandler.RecordPayment)
	admin.PATCH("/finance/payments/:id/status", paymentHandler.UpdatePaymentStatus)

	admin.GET("/complaints", requestHandler.AllComplaints)
	admin.PATCH("/complaints/:id/status", requestHandler.DecideComplaint)
	admin.GET("/maintenance", requestHandler.AllMaintenanceRequests)
	admin.PATCH("/maintenance/:id/status", requestHandler.DecideMaintenanceRequest)
	admin.GET("/sleepovers", requestHandler.AllSleepoverRequests)
	admin.PATCH("/sleepovers/:id/status", requestHandler.DecideSleepoverRequest)
	admin.GET("/guests", requestHandler.AllGuestRegistrations)
	admin.PATCH("/guests/:id/status", requestHandler.DecideGuestRegistration)
	admin.POST("/announcements", requestHandler.CreateAnnouncement)

	admin.GET("/dashboard/activity", dashboardHandler.Activity)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

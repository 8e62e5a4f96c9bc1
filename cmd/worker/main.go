package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
	"dormhub_app_echo/internal/tasks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// The task queue lives in Postgres
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Application data lives in Firestore
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = "./firebase-service-account.json"
	}

	_, fsClient, err := services.InitFirebase(context.Background(), credPath)
	if err != nil {
		log.Fatalf("Firebase initialization failed: %v", err)
	}
	defer fsClient.Close()

	userStore := services.NewUserStore(fsClient)
	paymentStore := services.NewPaymentStore(fsClient)
	reportStore := services.NewReportStore(fsClient)

	tasks.Define(tasks.Deps{
		Users:    userStore,
		Payments: paymentStore,
		Finance:  services.NewFinanceService(userStore, paymentStore),
		Reports:  reportStore,
		Email:    services.NewEmailService(),
	})

	log.Println("Worker started. Waiting for next tick...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	// Run once at startup, then on every tick
	processScheduledTasks(ctx, db)

	for {
		select {
		case <-ticker.C:
			processScheduledTasks(ctx, db)
		case <-ctx.Done():
			return
		}
	}
}

func processScheduledTasks(ctx context.Context, db *gorm.DB) {
	log.Println("Checking for pending tasks...")

	var pendingTasks []models.ScheduledTask
	now := time.Now()
	if err := db.Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, now).Find(&pendingTasks).Error; err != nil {
		log.Printf("Error fetching pending tasks: %v", err)
		return
	}

	if len(pendingTasks) == 0 {
		log.Println("No pending tasks found.")
		return
	}

	log.Printf("Found %d pending tasks.", len(pendingTasks))

	for _, task := range pendingTasks {
		if ctx.Err() != nil {
			return
		}
		executeTask(ctx, db, task)
	}
}

func executeTask(ctx context.Context, db *gorm.DB, task models.ScheduledTask) {
	log.Printf("Processing task: %s (ID: %d)", task.Name, task.ID)

	handler, found := tasks.GetHandler(task.Name)
	if !found {
		log.Printf("Task handler not found for: %s. Marking as failure.", task.Name)

		now := time.Now()
		db.Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		db.Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			Name:            task.Name,
			RunAt:           now,
			Status:          "handler_not_found",
			Attempt:         1,
			Args:            task.Args,
			Result:          map[string]interface{}{"error": "Handler not found"},
		})
		return
	}

	maxAttempts := task.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var startTime time.Time
	succeeded := false
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return
		}

		startTime = time.Now()
		result, err := handler(ctx, task.Args)
		runtimeMs := int(time.Since(startTime).Milliseconds())

		status := "success"
		resultData := result
		if err != nil {
			status = "failure"
			resultData = map[string]interface{}{"error": err.Error()}
			log.Printf("Task %s attempt %d/%d failed: %v", task.Name, attempt, maxAttempts, err)
		} else {
			succeeded = true
			log.Printf("Task %s completed successfully.", task.Name)
		}

		db.Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			Name:            task.Name,
			RunAt:           startTime,
			RuntimeMs:       runtimeMs,
			Status:          status,
			Attempt:         attempt,
			Args:            task.Args,
			Result:          resultData,
		})

		if succeeded {
			break
		}
	}

	taskUpdates := map[string]interface{}{
		"last_run": &startTime,
	}

	if !succeeded {
		taskUpdates["status"] = models.ScheduledTaskStatusFailure
	} else {
		switch task.Kind {
		case models.ScheduledTaskKindRecurring:
			nextDue := task.NextDue()
			// Only reschedule forward, otherwise the task would run
			// again on the next tick
			if nextDue.After(task.Due) {
				taskUpdates["status"] = models.ScheduledTaskStatusActive
				taskUpdates["due"] = nextDue
			} else {
				taskUpdates["status"] = models.ScheduledTaskStatusDone
			}
		default:
			taskUpdates["status"] = models.ScheduledTaskStatusDone
		}
	}

	db.Model(&task).Updates(taskUpdates)
}

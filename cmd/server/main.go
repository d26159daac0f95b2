package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"onegoal/internal/config"
	"onegoal/internal/database"
	"onegoal/internal/handlers"
	"onegoal/internal/jobs"
	"onegoal/internal/repository"
	scheduler "onegoal/internal/scheduler"
	"onegoal/internal/services"
	"onegoal/pkg/email"
	"onegoal/pkg/logger"
	"onegoal/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	listRepo := repository.NewListRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	plannerRepo := repository.NewPlannerRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// --- Live notification hub ---
	hub := handlers.NewHub()

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, hub)
	userService := services.NewUserService(userRepo)
	goalService := services.NewGoalService(goalRepo, notificationService)
	progressService := services.NewProgressService(progressRepo)
	listService := services.NewListService(listRepo)
	boardService := services.NewBoardService(boardRepo)
	financeService := services.NewFinanceService(financeRepo)
	plannerService := services.NewPlannerService(plannerRepo)
	analyticsService := services.NewAnalyticsService(progressRepo, userRepo)
	snapshotService := services.NewSnapshotService(userRepo, goalRepo, progressRepo, listRepo, boardRepo, financeRepo, plannerRepo)
	activityService := services.NewActivityService(activityRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	goalHandler := handlers.NewGoalHandler(goalService, activityService)
	progressHandler := handlers.NewProgressHandler(progressService, activityService)
	listHandler := handlers.NewListHandler(listService)
	boardHandler := handlers.NewBoardHandler(boardService)
	financeHandler := handlers.NewFinanceHandler(financeService, activityService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	activityHandler := handlers.NewActivityHandler(activityService)
	sudokuHandler := handlers.NewSudokuHandler()
	wsHandler := handlers.NewWSNotificationHandler(hub, cfg.JWTSecret)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/ws/notifications", wsHandler.ServeWS)

	// Everything below requires a valid token
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(middleware.UpdateLastActiveMiddleware(userService))

	// Account routes
	protected.HandleFunc("/users/me", userHandler.GetMeHandler).Methods("GET")
	protected.HandleFunc("/users/me/settings", userHandler.UpdateSettingsHandler).Methods("PUT")
	protected.HandleFunc("/users/me/routines", userHandler.GetRoutineSettingsHandler).Methods("GET")
	protected.HandleFunc("/users/me/routines", userHandler.UpdateRoutineSettingsHandler).Methods("PUT")

	// Goal routes
	protected.HandleFunc("/goals", goalHandler.CreateGoalHandler).Methods("POST")
	protected.HandleFunc("/goals", goalHandler.GetGoalHistoryHandler).Methods("GET")
	protected.HandleFunc("/goals/active", goalHandler.GetActiveGoalHandler).Methods("GET")
	protected.HandleFunc("/goals/{id}", goalHandler.UpdateGoalHandler).Methods("PUT")
	protected.HandleFunc("/goals/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")
	protected.HandleFunc("/goals/{id}/complete", goalHandler.CompleteGoalHandler).Methods("POST")
	protected.HandleFunc("/goals/{id}/abandon", goalHandler.AbandonGoalHandler).Methods("POST")

	// Daily progress routes
	protected.HandleFunc("/progress", progressHandler.GetRangeHandler).Methods("GET")
	protected.HandleFunc("/progress/{date}", progressHandler.GetDayHandler).Methods("GET")
	protected.HandleFunc("/progress/{date}/satisfaction", progressHandler.SetSatisfactionHandler).Methods("PUT")
	protected.HandleFunc("/progress/{date}/note", progressHandler.SetNoteHandler).Methods("PUT")
	protected.HandleFunc("/progress/{date}/sessions", progressHandler.AddSessionHandler).Methods("POST")
	protected.HandleFunc("/progress/{date}/sessions/{sessionId}", progressHandler.UpdateSessionHandler).Methods("PUT")
	protected.HandleFunc("/progress/{date}/sessions/{sessionId}", progressHandler.DeleteSessionHandler).Methods("DELETE")
	protected.HandleFunc("/progress/{date}/routines/{kind}", progressHandler.SetRoutineCountHandler).Methods("PUT")
	protected.HandleFunc("/progress/{date}/routines/{kind}/increment", progressHandler.IncrementRoutineHandler).Methods("POST")

	// List routes
	protected.HandleFunc("/lists", listHandler.GetListsHandler).Methods("GET")
	protected.HandleFunc("/lists/{kind}", listHandler.GetListHandler).Methods("GET")
	protected.HandleFunc("/lists/{kind}/items", listHandler.AddItemHandler).Methods("POST")
	protected.HandleFunc("/lists/{kind}/items/{itemId}", listHandler.UpdateItemHandler).Methods("PUT")
	protected.HandleFunc("/lists/{kind}/items/{itemId}", listHandler.DeleteItemHandler).Methods("DELETE")
	protected.HandleFunc("/lists/{kind}/items/{itemId}/toggle", listHandler.ToggleItemHandler).Methods("POST")
	protected.HandleFunc("/lists/{kind}/completed", listHandler.ClearCompletedHandler).Methods("DELETE")

	// Board routes
	protected.HandleFunc("/board", boardHandler.GetBoardHandler).Methods("GET")
	protected.HandleFunc("/board/resources", boardHandler.AddResourceHandler).Methods("POST")
	protected.HandleFunc("/board/resources/{id}", boardHandler.UpdateResourceHandler).Methods("PUT")
	protected.HandleFunc("/board/resources/{id}", boardHandler.DeleteResourceHandler).Methods("DELETE")
	protected.HandleFunc("/board/notes", boardHandler.AddNoteHandler).Methods("POST")
	protected.HandleFunc("/board/notes/{id}", boardHandler.UpdateNoteHandler).Methods("PUT")
	protected.HandleFunc("/board/notes/{id}", boardHandler.DeleteNoteHandler).Methods("DELETE")

	// Finance routes
	protected.HandleFunc("/finance/transactions", financeHandler.ListTransactionsHandler).Methods("GET")
	protected.HandleFunc("/finance/transactions", financeHandler.AddTransactionHandler).Methods("POST")
	protected.HandleFunc("/finance/transactions/{id}", financeHandler.UpdateTransactionHandler).Methods("PUT")
	protected.HandleFunc("/finance/transactions/{id}", financeHandler.DeleteTransactionHandler).Methods("DELETE")
	protected.HandleFunc("/finance/summary", financeHandler.GetSummaryHandler).Methods("GET")

	// Planner routes
	protected.HandleFunc("/planner/blocks", plannerHandler.ListBlocksHandler).Methods("GET")
	protected.HandleFunc("/planner/blocks", plannerHandler.AddBlockHandler).Methods("POST")
	protected.HandleFunc("/planner/blocks/{id}", plannerHandler.UpdateBlockHandler).Methods("PUT")
	protected.HandleFunc("/planner/blocks/{id}", plannerHandler.DeleteBlockHandler).Methods("DELETE")
	protected.HandleFunc("/planner/blocks/{id}/toggle", plannerHandler.ToggleBlockHandler).Methods("POST")

	// Analytics routes
	protected.HandleFunc("/analytics/overview", analyticsHandler.GetOverviewHandler).Methods("GET")

	// Snapshot routes
	protected.HandleFunc("/snapshot/export", snapshotHandler.ExportHandler).Methods("GET")
	protected.HandleFunc("/snapshot/import", snapshotHandler.ImportHandler).Methods("POST")

	// Notification routes
	protected.HandleFunc("/notifications", notificationHandler.GetNotificationsHandler).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	protected.HandleFunc("/notifications/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// Activity feed
	protected.HandleFunc("/activities", activityHandler.GetRecentActivitiesHandler).Methods("GET")

	// Sudoku mini-game
	protected.HandleFunc("/sudoku/new", sudokuHandler.NewPuzzleHandler).Methods("POST")
	protected.HandleFunc("/sudoku/solve", sudokuHandler.SolveHandler).Methods("POST")
	protected.HandleFunc("/sudoku/hint", sudokuHandler.HintHandler).Methods("POST")
	protected.HandleFunc("/sudoku/check", sudokuHandler.CheckHandler).Methods("POST")

	// Background scans
	if cfg.EnableCron {
		mailer := email.Sender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPSender,
			Password: cfg.SMTPPassword,
		}
		scanner := jobs.NewReminderScanner(userService, goalService, progressService, notificationService, mailer)
		scheduler.StartReminderCronJobs(scanner, notificationService)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dirtyFeedAPI/handlers"
	"dirtyFeedAPI/internal/notification"
	"dirtyFeedAPI/middleware"
	"dirtyFeedAPI/services"
	"dirtyFeedAPI/utils"

	_ "net/http/pprof"
)

var (
	dbPool            *pgxpool.Pool
	feedService       *services.FeedService
	goldenHourService *services.GoldenHourService
	fcmService        *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	stateStore := services.NewPgStateStore(dbPool)
	if err := stateStore.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure state schema:", err)
	}

	badgeService := services.NewBadgeService(nil)
	goldenHourService = services.NewGoldenHourService(nil)
	feedService = services.NewFeedService(stateStore, badgeService, goldenHourService, utils.SeedCurrentUser())

	if err := feedService.Refresh(ctx); err != nil {
		log.Printf("Warning: initial state load failed, running on seed data: %v", err)
	}

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json", os.Getenv("FCM_TOPIC"))
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		feedService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
	services.InitMetrics()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	clockCtx, stopClock := context.WithCancel(context.Background())

	goldenHourService.Start(clockCtx)

	feedHandler := handlers.NewFeedHandler(feedService)
	gamificationHandler := handlers.NewGamificationHandler(feedService)

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "dirty-feed-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER (REQUIRES AUTH HEADER)
	// -------------------------------------------------------------------------
	api := standardRouter.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.ClerkAuthMiddleware)

	api.HandleFunc("/feed", feedHandler.GetFeed).Methods("GET")
	api.HandleFunc("/feed/my-logs", feedHandler.GetMyLogs).Methods("GET")
	api.HandleFunc("/feed/log", feedHandler.AddLog).Methods("POST")
	api.HandleFunc("/feed/log/{id}", feedHandler.DeleteLog).Methods("DELETE")
	api.HandleFunc("/feed/log/{id}/like", feedHandler.ToggleLike).Methods("POST")
	api.HandleFunc("/feed/log/{id}/comment", feedHandler.AddComment).Methods("POST")
	api.HandleFunc("/feed/refresh", feedHandler.Refresh).Methods("POST")

	api.HandleFunc("/user/profile", gamificationHandler.GetProfile).Methods("GET")
	api.HandleFunc("/user/badges", gamificationHandler.GetBadges).Methods("GET")
	api.HandleFunc("/user/badges/new", gamificationHandler.GetNewBadges).Methods("GET")
	api.HandleFunc("/user/badges/new", gamificationHandler.ClearNewBadges).Methods("DELETE")
	api.HandleFunc("/user/streak", gamificationHandler.GetStreak).Methods("GET")

	api.HandleFunc("/leaderboards", gamificationHandler.GetLeaderboards).Methods("GET")
	api.HandleFunc("/leaderboards/titles", gamificationHandler.GetTitles).Methods("GET")
	api.HandleFunc("/mayorships", gamificationHandler.GetMayorships).Methods("GET")
	api.HandleFunc("/mayorships/{barId}/progress", gamificationHandler.GetMayorProgress).Methods("GET")
	api.HandleFunc("/bars/active", gamificationHandler.GetActiveBars).Methods("GET")
	api.HandleFunc("/golden-hour", gamificationHandler.GetGoldenHour).Methods("GET")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	stopClock()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}

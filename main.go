package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mrsimple007/friends-checking-bot/handlers"
	"github.com/mrsimple007/friends-checking-bot/internal/session"
	"github.com/mrsimple007/friends-checking-bot/middleware"
	"github.com/mrsimple007/friends-checking-bot/services"
)

var (
	dbPool             *pgxpool.Pool
	sessionStore       session.Store
	userService        *services.UserService
	streakService      *services.StreakService
	quizService        *services.QuizService
	leaderboardService *services.LeaderboardService
	aiService          *services.AIService
	birthdayService    *services.BirthdayService
	premiumService     *services.PremiumService
	adminService       *services.AdminService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

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

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
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

	log.Println("Successfully connected to Postgres")

	sessionTTL := 30 * time.Minute
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal("Failed to parse Redis URL:", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		sessionStore = session.NewRedisStore(client, sessionTTL)
		log.Println("Quiz sessions backed by Redis")
	} else {
		sessionStore = session.NewMemoryStore(sessionTTL)
		log.Println("Quiz sessions backed by memory (single instance only)")
	}

	userService = services.NewUserService(dbPool)
	streakService = services.NewStreakService(dbPool, userService)
	quizService = services.NewQuizService(dbPool, userService, streakService, sessionStore)
	leaderboardService = services.NewLeaderboardService(dbPool, userService)
	premiumService = services.NewPremiumService(dbPool)
	adminService = services.NewAdminService(dbPool)

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		aiService, err = services.NewAIService(ctx, apiKey)
		if err != nil {
			log.Printf("Warning: Could not initialize Gemini: %v", err)
		} else {
			log.Println("Gemini client initialized successfully")
		}
	} else {
		log.Println("GEMINI_API_KEY not set, birthday extraction disabled")
	}
	birthdayService = services.NewBirthdayService(dbPool, userService, aiService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	birthdayService.StartReminderWorker(workerCtx, func(rem services.Reminder) {
		// Delivery to chat is the gateway's job; the reminder only needs to
		// be visible on the due endpoint and in the log.
		log.Printf("BIRTHDAY REMINDER: user %d, friend %s", rem.UserID, rem.Name)
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	streakHandler := handlers.NewStreakHandler(streakService)
	quizHandler := handlers.NewQuizHandler(quizService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	birthdayHandler := handlers.NewBirthdayHandler(birthdayService)
	premiumHandler := handlers.NewPremiumHandler(premiumService, userService)
	adminHandler := handlers.NewAdminHandler(adminService, premiumService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
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
		w.Write([]byte(`{"status": "healthy", "service": "friends-checking-bot"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER (gateway-authenticated)
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.GatewayAuthMiddleware)

	api.HandleFunc("/users", userHandler.RegisterUser).Methods("POST")
	api.HandleFunc("/users/me", userHandler.GetProfile).Methods("GET")
	api.HandleFunc("/users/me/language", userHandler.SetLanguage).Methods("PUT")

	api.HandleFunc("/interactions", streakHandler.RecordInteraction).Methods("POST")
	api.HandleFunc("/streaks", streakHandler.ListStreaks).Methods("GET")

	api.HandleFunc("/quizzes/questions", quizHandler.GetQuestions).Methods("GET")
	api.HandleFunc("/quizzes", quizHandler.CreateQuiz).Methods("POST")
	api.HandleFunc("/quizzes/mine", quizHandler.MyQuizzes).Methods("GET")
	api.HandleFunc("/quizzes/results", quizHandler.MyResults).Methods("GET")
	api.HandleFunc("/quizzes/{id}/session", quizHandler.StartSession).Methods("POST")
	api.HandleFunc("/quizzes/session/answer", quizHandler.SubmitAnswer).Methods("POST")

	api.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboard).Methods("GET")

	api.HandleFunc("/birthdays", birthdayHandler.AddBirthday).Methods("POST")
	api.HandleFunc("/birthdays", birthdayHandler.ListBirthdays).Methods("GET")
	api.HandleFunc("/birthdays/{id}", birthdayHandler.DeleteBirthday).Methods("DELETE")
	api.HandleFunc("/birthdays/wish", birthdayHandler.GetWish).Methods("POST")
	api.HandleFunc("/birthdays/due", birthdayHandler.DueToday).Methods("GET")

	api.HandleFunc("/premium/plans", premiumHandler.GetPlans).Methods("GET")
	api.HandleFunc("/premium/subscribe", premiumHandler.Subscribe).Methods("POST")
	api.HandleFunc("/premium/status", premiumHandler.GetStatus).Methods("GET")

	// -------------------------------------------------------------------------
	// ADMIN ROUTES (restricted to ADMIN_IDS)
	// -------------------------------------------------------------------------
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuthMiddleware)

	admin.HandleFunc("/stats", adminHandler.GetStats).Methods("GET")
	admin.HandleFunc("/premium/requests", adminHandler.PendingRequests).Methods("GET")
	admin.HandleFunc("/premium/requests/{id}/approve", adminHandler.ApproveRequest).Methods("POST")
	admin.HandleFunc("/premium/requests/{id}/decline", adminHandler.DeclineRequest).Methods("POST")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-User-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
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
		WriteTimeout: 30 * time.Second,
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

	stopWorkers()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}

package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"flipstackk-api/handlers"
	"flipstackk-api/initializers"
	"flipstackk-api/middleware"
	"flipstackk-api/pkg/notify"
	"flipstackk-api/repository"
	"flipstackk-api/websocket"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters")
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	if err := initializers.InitDefaults(db); err != nil {
		log.Fatal("Failed to initialize default data:", err)
	}

	if err := initializers.InitMinio(); err != nil {
		log.Fatal("Failed to initialize Minio:", err)
	}

	usersRepo := repository.NewUsersRepository(db)
	leadsRepo := repository.NewLeadsRepository(db)
	callsRepo := repository.NewCallsRepository(db)
	activitiesRepo := repository.NewActivitiesRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	notificationsRepo := repository.NewNotificationsRepository(db)
	attachmentsRepo := repository.NewAttachmentsRepository(db)

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Structured request ID and JSON access logs
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	// Panic recovery
	r.Use(gin.Recovery())

	// Configure trusted proxies for correct client IP handling in production
	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Default to loopback only; override via TRUSTED_PROXIES in production
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORSMiddleware())
	// Apply rate limiting globally after CORS but before routes
	r.Use(middleware.RateLimitMiddleware())

	// WebSocket hub and notifier: every lead/call/activity mutation is
	// pushed to connected dashboards through here.
	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub, Repo: notificationsRepo}

	authHandler := handlers.NewAuthHandler(usersRepo)
	leadsHandler := handlers.NewLeadsHandler(leadsRepo).WithNotifier(notifier)
	callsHandler := handlers.NewCallsHandler(callsRepo, leadsRepo, usersRepo).WithNotifier(notifier)
	activitiesHandler := handlers.NewActivitiesHandler(activitiesRepo, leadsRepo).WithNotifier(notifier)
	teamHandler := handlers.NewTeamHandler(teamRepo)
	notificationsHandler := handlers.NewNotificationsHandler(notificationsRepo)
	attachmentsHandler := handlers.NewAttachmentsHandler(attachmentsRepo, leadsRepo)

	// Public endpoints
	r.GET("/health", handlers.HealthCheck)

	// Public endpoints with stricter auth rate limit
	authPublic := r.Group("/", middleware.RateLimitAuthMiddleware())
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", func(c *gin.Context) {
		c.Set("jwtSecret", jwtSecret)
		authHandler.Login(c)
	})

	auth := r.Group("/", handlers.AuthMiddleware(jwtSecret))
	{
		auth.GET("/ws", websocket.ServeWS(hub))

		// leads
		auth.POST("/leads", leadsHandler.CreateLead)
		auth.GET("/leads", leadsHandler.GetLeads)
		auth.GET("/leads/:id", leadsHandler.GetLead)
		auth.PATCH("/leads/:id", leadsHandler.UpdateLead)
		auth.PATCH("/leads/:id/delete", leadsHandler.DeleteLead)
		auth.PATCH("/leads/:id/restore", leadsHandler.RestoreLead)

		// calls
		auth.POST("/calls", callsHandler.LogCall)
		auth.POST("/calls/schedule", callsHandler.ScheduleCall)
		auth.PATCH("/calls/:id", callsHandler.UpdateCall)
		auth.GET("/calls/scheduled", callsHandler.GetScheduledCalls)
		auth.GET("/calls/history", callsHandler.GetCallHistory)

		// activities
		auth.POST("/activities", activitiesHandler.CreateActivity)
		auth.GET("/activities", activitiesHandler.GetActivities)

		// team
		auth.GET("/team/performance", teamHandler.GetTeamPerformance)

		// notifications
		auth.GET("/notifications/unread", notificationsHandler.ListUnread)
		auth.POST("/notifications/mark-read", notificationsHandler.MarkRead)

		// lead documents
		auth.POST("/upload", attachmentsHandler.UploadFile)
		auth.GET("/files/:id", attachmentsHandler.GetFile)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

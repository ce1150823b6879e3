package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/campushire/campushire/config"
	"github.com/campushire/campushire/internal/api/handlers"
	"github.com/campushire/campushire/internal/api/middleware"
	"github.com/campushire/campushire/internal/api/routes"
	"github.com/campushire/campushire/internal/cache"
	"github.com/campushire/campushire/internal/logger"
	mongorepo "github.com/campushire/campushire/internal/repositories/mongo"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/workers"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(config.PostgresDB); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	db := config.PostgresDB
	rdb := config.RedisClient
	rc := cache.NewRedisCache(rdb)

	// Repositories
	studentRepo := pgrepo.NewStudentRepo(db)
	userRepo := pgrepo.NewAuthorizedUserRepo(db)
	tokenRepo := pgrepo.NewRefreshTokenRepo(db)
	sessionRepo := pgrepo.NewSessionRepo(db)
	questionRepo := pgrepo.NewQuestionRepo(db)
	interviewRepo := pgrepo.NewInterviewRepo(db)
	consolidationRepo := pgrepo.NewConsolidationRepo(db)
	emailRepo := pgrepo.NewEmailLogRepo(db)
	activityRepo := pgrepo.NewActivityLogRepo(db)
	auditRepo := mongorepo.NewAuditRepo(config.MongoDatabase())

	// Services
	atomicRecompute := os.Getenv("CONSOLIDATION_ATOMIC") == "true"
	authSvc := services.NewAuthService(userRepo, tokenRepo, os.Getenv("JWT_SECRET"))
	studentSvc := services.NewStudentService(studentRepo)
	sessionSvc := services.NewSessionService(sessionRepo)
	questionSvc := services.NewQuestionService(questionRepo)
	consolidationSvc := services.NewConsolidationService(db, interviewRepo, consolidationRepo, activityRepo, rc, log, atomicRecompute)
	backfillSvc := services.NewBackfillService(db, log)
	publisher := &workers.RecomputePublisher{Redis: rdb}
	interviewSvc := services.NewInterviewService(interviewRepo, studentRepo, questionRepo, activityRepo, publisher, log)
	emailSvc := services.NewEmailService(emailRepo, consolidationRepo, activityRepo, log)
	activitySvc := services.NewActivityService(activityRepo)

	// Background recompute consumers
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	numWorkers, _ := strconv.Atoi(os.Getenv("RECOMPUTE_WORKERS"))
	pool := &workers.RecomputeWorkerPool{
		Redis:         rdb,
		Consolidation: consolidationSvc,
		NumWorkers:    numWorkers,
		Logger:        log,
	}
	if err := pool.Start(ctx); err != nil {
		log.Fatalf("recompute worker pool error: %v", err)
	}

	// Start Gin server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuditCapture(auditRepo, log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:          handlers.NewAuthHandler(authSvc),
		Student:       handlers.NewStudentHandler(studentSvc),
		Session:       handlers.NewSessionHandler(sessionSvc),
		Question:      handlers.NewQuestionHandler(questionSvc),
		Interview:     handlers.NewInterviewHandler(interviewSvc),
		Consolidation: handlers.NewConsolidationHandler(consolidationSvc, backfillSvc),
		Activity:      handlers.NewActivityHandler(activitySvc),
		Email:         handlers.NewEmailHandler(emailSvc),
		Audit:         handlers.NewAuditHandler(auditRepo),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

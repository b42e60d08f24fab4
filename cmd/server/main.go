package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Priyan1011/remote-interview-platform/internal/emails"
	"github.com/Priyan1011/remote-interview-platform/internal/execution"
	"github.com/Priyan1011/remote-interview-platform/internal/handlers"
	"github.com/Priyan1011/remote-interview-platform/internal/jobs"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/piston"
	"github.com/Priyan1011/remote-interview-platform/internal/questions"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
	mongorepo "github.com/Priyan1011/remote-interview-platform/internal/repositories/mongo"
	"github.com/Priyan1011/remote-interview-platform/internal/routers"
	"github.com/Priyan1011/remote-interview-platform/internal/session"
)

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initUserDatabase connects to PostgreSQL and migrates the user table.
func initUserDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "interlink")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// document store
	mongoClient, err := mongorepo.NewClient(ctx)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	sessionRepo, err := mongorepo.NewSessionRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to init session collection", zap.Error(err))
	}
	executionRepo, err := mongorepo.NewExecutionRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to init execution collection", zap.Error(err))
	}
	interviewRepo, err := mongorepo.NewInterviewRepo(mongoClient)
	if err != nil {
		logger.Fatal("failed to init interview collections", zap.Error(err))
	}

	// relational store for accounts
	userDB, err := initUserDatabase()
	if err != nil {
		logger.Fatal("failed to init user database", zap.Error(err))
	}
	userRepo := &repositories.UserRepository{DB: userDB}

	// cross-instance fan-out
	rdb := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})
	hub := session.NewHub()
	bridge := session.NewBridge(rdb, hub, logger)
	go bridge.Subscribe(ctx)
	fan := &session.Fanout{Hub: hub, Bridge: bridge}

	store := repositories.NewSessionStore(sessionRepo)
	gateway := piston.NewClient(getEnv("PISTON_URL", piston.DefaultBaseURL))
	execSvc := execution.NewService(gateway, executionRepo, logger)
	bank := questions.NewBank()
	mailer := emails.NewMailerFromEnv(logger)

	sweeper := jobs.NewStatusSweeper(interviewRepo, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("failed to start status sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	handler := routers.New(routers.Handlers{
		Auth:       handlers.NewAuthHandler(userRepo),
		Sessions:   handlers.NewSessionHandler(store, fan, logger),
		Collab:     handlers.NewCollabHandler(store, execSvc, hub, fan, bank, logger),
		Executions: handlers.NewExecutionHandler(gateway, execSvc, logger),
		Interviews: handlers.NewInterviewHandler(interviewRepo, mailer, logger),
		Comments:   handlers.NewCommentHandler(interviewRepo, mailer, logger),
		Questions:  handlers.NewQuestionHandler(bank),
	})

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("interview platform starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BitSparkCode/online-shop-api/config"
	"github.com/BitSparkCode/online-shop-api/internal/auth"
	"github.com/BitSparkCode/online-shop-api/internal/delivery"
	grpcHandler "github.com/BitSparkCode/online-shop-api/internal/delivery/grpc"
	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/BitSparkCode/online-shop-api/internal/repository/memory"
	"github.com/BitSparkCode/online-shop-api/internal/repository/postgres"
	"github.com/BitSparkCode/online-shop-api/internal/usecase"
	"github.com/BitSparkCode/online-shop-api/pkg/db"
	"github.com/BitSparkCode/online-shop-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

type repositories struct {
	users      domain.UserRepository
	categories domain.CategoryRepository
	products   domain.ProductRepository
	close      func()
}

func main() {
	bootLogger := logger.New("info", "json")

	cfg, err := config.LoadConfig(bootLogger)
	if err != nil {
		bootLogger.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("Starting online shop API...")

	ctx := context.Background()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer repos.close()

	tokens := auth.NewTokenService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	authUseCase := usecase.NewAuthUseCase(repos.users, hasher, tokens, log)
	categoryUseCase := usecase.NewCategoryUseCase(repos.categories, log)
	productUseCase := usecase.NewProductUseCase(repos.products, log)
	log.Info("Use cases initialized.")

	if err := authUseCase.SeedAdmin(ctx, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if cfg.AdminPassword == config.DefaultAdminPassword {
		log.Warn("Admin account uses the default password; set ADMIN_PASSWORD to change it")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := delivery.NewRouter(delivery.RouterDeps{
		Auth:       authUseCase,
		Categories: categoryUseCase,
		Products:   productUseCase,
		Verifier:   tokens,
		Registry:   registry,
		Logger:     log,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
		log.Info("HTTP server stopped serving.")
	}()

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
	}
	grpcServer := grpcHandler.NewServer(log)

	go func() {
		log.Infof("gRPC server listening on %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server forced to shutdown: %v", err)
	}
	grpcServer.Shutdown()

	log.Info("Online shop API shut down gracefully.")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*repositories, error) {
	if cfg.StoreDriver != config.StorePostgres {
		store := memory.NewStore(log)
		log.Info("Using in-memory store; all data is lost on restart")
		return &repositories{
			users:      store.Users(),
			categories: store.Categories(),
			products:   store.Products(),
			close:      func() {},
		}, nil
	}

	log.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, database.DB); err != nil {
		_ = database.Close()
		return nil, err
	}
	log.Info("Database connection established and migrations applied.")

	return &repositories{
		users:      postgres.NewPostgresUserRepository(database, log),
		categories: postgres.NewPostgresCategoryRepository(database, log),
		products:   postgres.NewPostgresProductRepository(database, log),
		close: func() {
			if err := database.Close(); err != nil {
				log.Errorf("Error closing database connection: %v", err)
			} else {
				log.Info("Database connection closed.")
			}
		},
	}, nil
}

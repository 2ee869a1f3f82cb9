package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/config"
	"github.com/craftmarket/catalog-service/internal/assets"
	authhandler "github.com/craftmarket/catalog-service/internal/auth/handler"
	authrepository "github.com/craftmarket/catalog-service/internal/auth/repository"
	authusecase "github.com/craftmarket/catalog-service/internal/auth/usecase"
	categoryhandler "github.com/craftmarket/catalog-service/internal/category/handler"
	categoryrepository "github.com/craftmarket/catalog-service/internal/category/repository"
	categoryusecase "github.com/craftmarket/catalog-service/internal/category/usecase"
	producthandler "github.com/craftmarket/catalog-service/internal/product/handler"
	productrepository "github.com/craftmarket/catalog-service/internal/product/repository"
	productusecase "github.com/craftmarket/catalog-service/internal/product/usecase"
	"github.com/craftmarket/catalog-service/internal/routes"
	"github.com/craftmarket/catalog-service/pkg/cache"
	"github.com/craftmarket/catalog-service/pkg/database/mysql"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv != "prod",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	appLogger.Info("starting catalog service", zap.String("env", cfg.Server.AppEnv))

	db, err := mysql.NewMySQL(&mysql.Config{
		Host:            cfg.MySQL.Host,
		Port:            cfg.MySQL.Port,
		User:            cfg.MySQL.User,
		Password:        cfg.MySQL.Password,
		DBName:          cfg.MySQL.DBName,
		MaxOpenConns:    cfg.MySQL.MaxOpenConns,
		MaxIdleConns:    cfg.MySQL.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.MySQL.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.MySQL.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("mysql connection failed", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to mysql", zap.String("host", cfg.MySQL.Host))

	// The service stays up without redis; the category tree is simply read
	// from the database every time.
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	defer redisClient.Close()

	productRepo := productrepository.NewMySQLRepository(db)
	categoryRepo := categoryrepository.NewMySQLRepository(db)
	authRepo := authrepository.NewMySQLRepository(db)

	store := assets.NewStore(cfg.Assets.BaseDir)
	normalizer := assets.NewNormalizer(
		cfg.Assets.MaxWidth,
		cfg.Assets.JPEGQuality,
		cfg.Assets.ThumbWidth,
		cfg.Assets.ThumbQuality,
	)
	reconciler := assets.NewReconciler(store, normalizer, productRepo, cfg.Assets.Placeholder, appLogger)

	productUC := productusecase.NewProductUseCase(productRepo, reconciler, appLogger)
	categoryUC := categoryusecase.NewCategoryUseCase(categoryRepo, productRepo, reconciler, redisClient, appLogger)
	authUC := authusecase.NewAuthUseCase(authRepo, cfg.JWT.SecretKey, appLogger)

	handlers := routes.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC, appLogger),
		Category: categoryhandler.NewCategoryHandler(categoryUC, cfg.Assets.URLPrefix, appLogger),
		Product:  producthandler.NewProductHandler(productUC, cfg.Assets.URLPrefix, appLogger),
	}

	router := routes.SetupRouter(cfg, handlers, appLogger)

	server := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("http server listening", zap.String("addr", cfg.Server.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}

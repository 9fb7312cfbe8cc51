package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pinkcart/api/internal/app/controllers"
	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/config"
	"github.com/pinkcart/api/internal/platform/auth"
	"github.com/pinkcart/api/internal/platform/database"
	httpPlatform "github.com/pinkcart/api/internal/platform/http"
	"github.com/pinkcart/api/pkg/eventlog"
	"github.com/pinkcart/api/pkg/logger"
	storagepkg "github.com/pinkcart/api/pkg/storage"
	minioStorage "github.com/pinkcart/api/pkg/storage/minio"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.MustLoad()
	loggers := logger.New(cfg.LogLevel)
	appLog := loggers.App

	var objectStorage storagepkg.Service
	if cfg.Storage.Enabled() {
		store, err := minioStorage.New(context.Background(), minioStorage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLog.WithError(err).Fatal("storage initialization error")
		}
		objectStorage = store
		appLog.WithField("bucket", cfg.Storage.Bucket).Info("object storage enabled")
	}

	var (
		productRepo repositories.ProductRepository
		catRepo     repositories.CategoryRepository
		joinRepo    repositories.JoinEventRepository
		orderRepo   repositories.OrderRepository
		userRepo    repositories.UserRepository
		phoneRepo   repositories.PhoneNumberRepository
	)

	if cfg.MongoURI != "" {
		ctx := context.Background()
		db, dbClose, err := database.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			appLog.WithError(err).Fatal("database connection error")
		}
		defer func() {
			if err := dbClose(); err != nil {
				appLog.WithError(err).Error("error closing database")
			}
		}()
		appLog.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")

		productRepo = repositories.NewMongoProductRepo(db)
		orderRepo = repositories.NewMongoOrderRepo(db)
		if catRepo, err = repositories.NewMongoCategoryRepo(ctx, db); err != nil {
			appLog.WithError(err).Fatal("category repository initialization error")
		}
		if joinRepo, err = repositories.NewMongoJoinEventRepo(ctx, db, cfg.JoinRetention); err != nil {
			appLog.WithError(err).Fatal("join event repository initialization error")
		}
		if userRepo, err = repositories.NewMongoUserRepo(ctx, db); err != nil {
			appLog.WithError(err).Fatal("user repository initialization error")
		}
		if phoneRepo, err = repositories.NewMongoPhoneRepo(ctx, db); err != nil {
			appLog.WithError(err).Fatal("phone repository initialization error")
		}
	} else {
		appLog.Info("MONGODB_URI not set, using in-memory repositories")
		productRepo = repositories.NewInMemoryProductRepo()
		catRepo = repositories.NewInMemoryCategoryRepo()
		joinRepo = repositories.NewInMemoryJoinEventRepo()
		orderRepo = repositories.NewInMemoryOrderRepo()
		userRepo = repositories.NewInMemoryUserRepo()
		phoneRepo = repositories.NewInMemoryPhoneRepo()
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	auditLog := eventlog.NewWriter(cfg.EventLogDir)

	joinSvc := services.NewJoinService(joinRepo, productRepo, auditLog, loggers.Sub("joins"))
	catalogSvc := services.NewCatalogService(productRepo, catRepo, objectStorage, cfg.WhatsAppNumber, cfg.PublicBaseURL)
	orderSvc := services.NewOrderService(orderRepo, userRepo, productRepo)
	authSvc := services.NewAuthService(userRepo, tokens, loggers.Sub("auth"))
	imageSvc := services.NewImageService(objectStorage)
	userSvc := services.NewUserService(userRepo)
	phoneSvc := services.NewPhoneService(phoneRepo)

	if err := authSvc.EnsureSuperAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		appLog.WithError(err).Fatal("super admin seeding error")
	}

	router := httpPlatform.NewRouter(httpPlatform.RouterConfig{
		CatalogCtrl:   controllers.NewCatalogController(catalogSvc),
		JoinCtrl:      controllers.NewJoinController(joinSvc),
		OrderCtrl:     controllers.NewOrderController(orderSvc),
		UserCtrl:      controllers.NewUserController(userSvc),
		AuthCtrl:      controllers.NewAuthController(authSvc, cfg.TokenTTL, cfg.Env == "production"),
		UploadCtrl:    controllers.NewUploadController(imageSvc),
		PhoneCtrl:     controllers.NewPhoneController(phoneSvc),
		ExportCtrl:    controllers.NewExportController(joinSvc, orderSvc, phoneSvc),
		Verifier:      tokens,
		Logger:        loggers.HTTP,
		SwaggerEnable: cfg.SwaggerEnable,
	})

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		appLog.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	appLog.Info("shutting down...")
	_ = srv.Shutdown(context.Background())
}

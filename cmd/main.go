package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/thejerf/abtime"

	httpctx "github.com/dtroode/quill-server/internal/api/http/context"
	"github.com/dtroode/quill-server/internal/api/http/router"
	httpServer "github.com/dtroode/quill-server/internal/api/http/server"
	"github.com/dtroode/quill-server/internal/config"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
	"github.com/dtroode/quill-server/internal/password"
	"github.com/dtroode/quill-server/internal/repository/postgres"
	"github.com/dtroode/quill-server/internal/server"
	"github.com/dtroode/quill-server/internal/service"
	minioStorage "github.com/dtroode/quill-server/internal/storage/minio"
	s3Storage "github.com/dtroode/quill-server/internal/storage/s3"
	"github.com/dtroode/quill-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	conn, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer conn.Close()

	objects, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		// Fatal exits without running deferred calls.
		_ = conn.Close()
		logger.Fatal("failed to initialize storage client", "error", err, "driver", cfg.Storage.Driver)
	}

	userRepo := postgres.NewUserRepository(conn.DB)
	postRepo := postgres.NewPostRepository(conn.DB)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL, abtime.NewRealTime())
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	userService := service.NewUser(userRepo, objects, hasher, cfg.Avatar.MaxBytes, logger)
	postService := service.NewPost(postRepo, userRepo, logger)

	r := router.New(router.Params{
		AuthService:    authService,
		UserService:    userService,
		PostService:    postService,
		Storage:        objects,
		Tokens:         tokenManager,
		ContextManager: httpctx.NewManager(),
		DB:             conn.DB,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Logger:         logger,
	})

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), httpServer.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
		Idle:  cfg.HTTP.IdleTimeout,
	})
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newStorage(ctx context.Context, cfg config.Storage) (model.Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		return s3Storage.NewClient(ctx, s3Storage.Options{
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			Bucket:       cfg.S3.Bucket,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
	default:
		return minioStorage.NewClientFromOptions(ctx, minioStorage.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

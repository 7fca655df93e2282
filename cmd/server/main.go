package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidstream/api/internal/adapters/handler/http"
	"github.com/vidstream/api/internal/adapters/repository/mongodb"
	"github.com/vidstream/api/internal/adapters/storage/minio"
	"github.com/vidstream/api/internal/config"
	"github.com/vidstream/api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := mongodb.NewStore(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	media, err := minio.NewMediaStorage(minio.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MediaPublicURL,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := media.EnsureBucket(context.Background()); err != nil {
		log.Fatal(err)
	}

	userRepo := mongodb.NewUserRepository(store)
	tokenSvc := services.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := services.NewAuthService(userRepo, tokenSvc, media)
	userSvc := services.NewUserService(userRepo, media)

	authHandler := http.NewAuthHandler(authSvc, cfg.UploadDir, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userHandler := http.NewUserHandler(userSvc, authSvc, cfg.UploadDir)
	handler := http.NewHandler(authHandler, userHandler, tokenSvc, userRepo, cfg.CORSOrigins)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[server] Listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[server] Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

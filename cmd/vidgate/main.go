package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vidgate/vidgate/internal/database"
	"github.com/vidgate/vidgate/internal/gate"
	"github.com/vidgate/vidgate/internal/server"
	"github.com/vidgate/vidgate/internal/storage"
)

func main() {
	port := getEnv("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	resetPolicy, err := gate.ParsePolicy(os.Getenv("GATE_RESET_POLICY"))
	if err != nil {
		log.Fatalf("invalid GATE_RESET_POLICY: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(databaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migrations applied")

	if err := database.Seed(ctx, db.Pool, database.SeedConfig{
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SamplePages:   getEnvBool("SEED_SAMPLE_PAGES", true),
	}); err != nil {
		log.Fatalf("database seed failed: %v", err)
	}

	maxUploadBytes := getEnvInt64("MAX_UPLOAD_BYTES", 500*1024*1024)
	baseURL := strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/")

	store, err := storage.New(ctx, storage.Config{
		Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:9000"),
		PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
		PublicBaseURL:  os.Getenv("S3_PUBLIC_BASE_URL"),
		Bucket:         getEnv("S3_BUCKET", "vidgate"),
		AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		SecretKey:      os.Getenv("S3_SECRET_KEY"),
		Region:         getEnv("S3_REGION", "us-east-1"),
		MaxUploadBytes: maxUploadBytes,
	})
	if err != nil {
		log.Fatalf("storage initialization failed: %v", err)
	}

	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("storage bucket check failed: %v", err)
	}
	if err := store.SetCORS(ctx, []string{baseURL}); err != nil {
		log.Printf("storage CORS setup failed, browser uploads may be blocked: %v", err)
	}
	log.Println("storage bucket ready")

	var webFS fs.FS
	if dir := os.Getenv("ADMIN_STATIC_DIR"); dir != "" {
		webFS = os.DirFS(dir)
		log.Printf("serving admin UI from %s", dir)
	} else {
		log.Println("ADMIN_STATIC_DIR not set, admin UI serving disabled")
	}

	srv := server.New(server.Config{
		DB:               db.Pool,
		Pinger:           db,
		Storage:          store,
		WebFS:            webFS,
		JWTSecret:        jwtSecret,
		BaseURL:          baseURL,
		MaxUploadBytes:   maxUploadBytes,
		S3PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
		ResetPolicy:      resetPolicy,
		ProgressLabel:    getEnvBool("GATE_PROGRESS_LABEL", false),
		PageCacheTTL:     time.Duration(getEnvInt64("PAGE_CACHE_SECONDS", 30)) * time.Second,
	})
	log.Printf("click gate reset policy: %s", resetPolicy)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("vidgate listening on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

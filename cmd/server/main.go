package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tripforge/tripforge/internal/api"
	"github.com/tripforge/tripforge/internal/auth"
	"github.com/tripforge/tripforge/internal/cache"
	"github.com/tripforge/tripforge/internal/llm"
	"github.com/tripforge/tripforge/internal/media"
	"github.com/tripforge/tripforge/internal/planner"
	"github.com/tripforge/tripforge/internal/storage"
	"github.com/tripforge/tripforge/migrations"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	databaseURL := mustEnv("DATABASE_URL")
	redisURL := mustEnv("REDIS_URL")
	jwtSecret := mustEnv("JWT_SECRET")
	port := getEnv("PORT", "8080")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	uploadDir := getEnv("UPLOAD_DIR", "uploads")
	s3Bucket := os.Getenv("S3_BUCKET")

	ctx := context.Background()

	// Connect to PostgreSQL.
	pool, err := storage.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	// Run migrations.
	if err := storage.RunMigrations(ctx, pool, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("migrations applied")

	// Connect to Redis.
	redisClient, err := cache.Connect(ctx, redisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	// LLM clients are optional; the planner degrades to the built-in
	// itinerary builder without them.
	var openaiClient, geminiClient llm.Client
	if openaiKey != "" {
		openaiClient = llm.NewOpenAIClient(openaiKey)
		log.Info("openai client enabled")
	}
	if geminiKey != "" {
		geminiClient = llm.NewGeminiClient(geminiKey)
		log.Info("gemini client enabled")
	}

	// Media store: S3 when a bucket is configured, local disk otherwise.
	var mediaStore media.Store
	uploadsDir := ""
	if s3Bucket != "" {
		s3Store, err := media.NewS3Store(ctx, s3Bucket)
		if err != nil {
			return fmt.Errorf("configuring s3 media store: %w", err)
		}
		mediaStore = s3Store
		log.Info("media store: s3", "bucket", s3Bucket)
	} else {
		diskStore, err := media.NewDiskStore(uploadDir, "/uploads")
		if err != nil {
			return fmt.Errorf("configuring disk media store: %w", err)
		}
		mediaStore = diskStore
		uploadsDir = diskStore.Dir()
		log.Info("media store: disk", "dir", uploadsDir)
	}

	// Wire dependencies.
	repo := storage.NewRepository(pool)
	cacheLayer := cache.NewCache(redisClient)
	tokens := auth.NewManager(jwtSecret)
	generator := planner.NewGenerator(geminiFirst(geminiClient, openaiClient), log)
	editor := planner.NewEditor(geminiClient, openaiClient, log)

	handlers := api.NewHandlers(api.Deps{
		Users:       repo,
		Itineraries: repo,
		Photos:      repo,
		Albums:      repo,
		Cache:       cacheLayer,
		Generator:   generator,
		Editor:      editor,
		Media:       mediaStore,
		Tokens:      tokens,
		Log:         log,
	})

	router := api.NewRouter(handlers, api.RouterConfig{
		Tokens:     tokens,
		DB:         &pgxPoolPinger{pool: pool},
		Redis:      &redisPingerAdapter{client: redisClient},
		Log:        log,
		UploadsDir: uploadsDir,
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // plan generation can block on the LLM
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// geminiFirst picks the generation client, preferring Gemini.
func geminiFirst(gemini, openai llm.Client) llm.Client {
	if gemini != nil {
		return gemini
	}
	return openai
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// pgxPoolPinger adapts pgxpool.Pool to the api health pinger.
type pgxPoolPinger struct {
	pool interface {
		Ping(ctx context.Context) error
	}
}

func (p *pgxPoolPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// redisPingerAdapter adapts redis.Client to the api health pinger.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

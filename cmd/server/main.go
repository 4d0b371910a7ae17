package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/plantparty/outreach/internal/cache"
	"github.com/plantparty/outreach/internal/config"
	"github.com/plantparty/outreach/internal/domain/fiber/handler"
	"github.com/plantparty/outreach/internal/middleware"
	"github.com/plantparty/outreach/internal/repository"
	"github.com/plantparty/outreach/internal/service"
	"github.com/plantparty/outreach/internal/usecase"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	pipelineConfig := config.LoadPipelineConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	generator, err := newTextGenerator(ctx, pipelineConfig.Provider)
	if err != nil {
		log.Fatal(err)
	}
	limited := service.NewRateLimitedGenerator(generator, pipelineConfig.RatePerSec, pipelineConfig.Burst)

	pdlConfig := config.LoadPeopleDataConfig()
	people, err := service.NewPeopleDataLabsService(pdlConfig.APIKey, pdlConfig.BaseURL)
	if err != nil {
		log.Fatal(err)
	}

	var searchCache cache.SearchCache
	if rdb := connectRedis(ctx); rdb != nil {
		defer rdb.Close()
		searchCache = cache.NewRedisSearchCache(rdb, config.LoadRedisConfig().CacheTTL)
	}
	candidateRepo := repository.NewCandidateRepository(people, searchCache, pdlConfig.SearchSize)

	uc := usecase.NewProposalUsecase(
		usecase.NewDependencies(limited, candidateRepo, *pipelineConfig),
		usecase.Options{Workers: pipelineConfig.Workers, DumpPath: pipelineConfig.DumpPath},
	)
	handler.NewProposalHandler(uc, appConfig.RequestTimeout).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(appConfig.RequestTimeout); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func newTextGenerator(ctx context.Context, provider string) (service.TextGeneratorInterface, error) {
	switch provider {
	case "gemini":
		geminiConfig := config.LoadGeminiConfig()
		return service.NewGeminiService(ctx, geminiConfig.APIKey, geminiConfig.Model)
	case "openrouter":
		orConfig := config.LoadOpenRouterConfig()
		return service.NewOpenRouterService(orConfig.APIKey, orConfig.BaseURL, orConfig.Model)
	default:
		return nil, &service.CapabilityUnavailableError{
			Capability: "text generation",
			Reason:     fmt.Sprintf("unknown LLM_PROVIDER %q, want gemini or openrouter", provider),
		}
	}
}

// connectRedis returns nil when the cache is disabled or unreachable; the
// pipeline then searches the provider on every run.
func connectRedis(ctx context.Context) *redis.Client {
	redisConfig := config.LoadRedisConfig()
	if redisConfig.URL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisConfig.URL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, search cache disabled: %v", err)
		return nil
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis unreachable, search cache disabled: %v", err)
		_ = rdb.Close()
		return nil
	}
	log.Println("Search cache enabled")
	return rdb
}

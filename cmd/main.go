package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/quizmatch/server/internal/infrastructure/configs"
	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/quizmatch/server/internal/infrastructure/ratelimiter"
	"github.com/quizmatch/server/internal/infrastructure/repository"
	"github.com/quizmatch/server/internal/infrastructure/storage"
	"github.com/quizmatch/server/internal/infrastructure/tracing"
	"github.com/quizmatch/server/internal/presentation/api"
	"github.com/quizmatch/server/internal/presentation/handler/health"
	"github.com/quizmatch/server/internal/presentation/handler/quizzes"
	"github.com/quizmatch/server/internal/presentation/handler/rooms"
)

const (
	serviceName = "quizmatch-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())
	logger.Init()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	roomRepository := repository.NewRoomRepository(cfg.RoomStore.Expiry, cfg.RoomStore.SweepInterval, logger)
	defer roomRepository.Close()

	quizRepository := repository.NewQuizRepository()

	quizStore, err := storage.NewQuizStore(cfg.QuizStore.StorageDir)
	if err != nil {
		// Snapshots are best-effort; the service runs without them.
		logger.Warn(logging.QuizStore, logging.Startup, "quiz snapshots disabled", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		quizStore = nil
	}

	roomHandler := rooms.NewHandler(roomRepository, cfg.RoomStore, logger)
	quizHandler := quizzes.NewHandler(quizRepository, quizStore, logger)
	healthHandler := health.NewHandler(roomRepository, quizRepository)

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})
	defer rl.Close()

	app := api.NewApplication(*cfg, roomHandler, quizHandler, healthHandler, logger, rl)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatal(logging.General, logging.Shutdown, "server exited with error", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quizmatch/server/internal/infrastructure/configs"
	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/quizmatch/server/internal/infrastructure/metrics"
	"github.com/quizmatch/server/internal/infrastructure/ratelimiter"
	healthHandler "github.com/quizmatch/server/internal/presentation/handler/health"
	quizHandler "github.com/quizmatch/server/internal/presentation/handler/quizzes"
	roomHandler "github.com/quizmatch/server/internal/presentation/handler/rooms"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config        configs.Config
	roomHandler   *roomHandler.Handler
	quizHandler   *quizHandler.Handler
	healthHandler *healthHandler.Handler
	logger        logging.Logger
	ratelimiter   ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	roomHandler *roomHandler.Handler,
	quizHandler *quizHandler.Handler,
	healthHandler *healthHandler.Handler,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:        config,
		roomHandler:   roomHandler,
		quizHandler:   quizHandler,
		healthHandler: healthHandler,
		logger:        logger,
		ratelimiter:   ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.rateLimiterMiddleware)
	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)
	r.Use(app.metricsMiddleware)

	r.Route("/room", func(r chi.Router) {
		r.Post("/create", app.roomHandler.CreateRoomHandler)
		r.Post("/join", app.roomHandler.JoinRoomHandler)
		r.Get("/{code}", app.roomHandler.GetRoomHandler)
		r.Put("/{code}", app.roomHandler.UpdateRoomStatusHandler)
	})
	r.Get("/rooms", app.roomHandler.ListRoomsHandler)

	r.Route("/quiz", func(r chi.Router) {
		r.Post("/create", app.quizHandler.CreateQuizHandler)
		r.Get("/{quizId}", app.quizHandler.GetQuizHandler)
		r.Get("/{quizId}/html", app.quizHandler.GetQuizHTMLHandler)
		r.Post("/{quizId}/submit", app.quizHandler.SubmitAnswerHandler)
	})
	r.Get("/quizzes", app.quizHandler.ListQuizzesHandler)

	r.Get("/health", app.healthHandler.GetHealth)
	r.Get("/healthz", app.healthHandler.GetHealth)
	r.Get("/ready", app.healthHandler.GetHealth)
	r.Get("/live", app.healthHandler.GetHealth)

	r.Handle("/metrics", metrics.Handler())

	if app.config.HTTP.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(app.config.HTTP.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return otelhttp.NewHandler(r, "quizmatch-api")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}

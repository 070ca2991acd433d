package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"tienda-api/config"
	"tienda-api/internal/controller"
	"tienda-api/internal/infrastructure/database/postgres"
	"tienda-api/internal/infrastructure/mail"
	"tienda-api/internal/infrastructure/message-queue/kafka"
	paymentgateway "tienda-api/internal/infrastructure/payment-gateway"
	"tienda-api/internal/infrastructure/tracing"
	localmiddleware "tienda-api/internal/middleware"
	"tienda-api/internal/repository"
	"tienda-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	DB     *gorm.DB
	Config *config.Config
}

// Start wires the handles, serves until a termination signal or a listener
// failure, and tears everything down on the way out. Every handle opened
// here is closed here; the process never exits with defers pending.
func (app *App) Start() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := postgres.Migrate(app.DB); err != nil {
		return err
	}

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if traceProvider == nil {
			return
		}
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	tracer := otel.Tracer("tienda-api")

	gateway := paymentgateway.CreateStripeGateway(app.Config.StripeConfig)
	mailer := mail.CreateGomailSender(app.Config.SMTPConfig)

	kafkaProducer := kafka.CreateKafkaProducer(app.Config)
	defer kafkaProducer.Close()
	publisher := kafka.CreatePublisher(kafkaProducer)

	e := echo.New()

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	e.Use(echoprometheus.NewMiddleware(""))
	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	e.Static("/uploads", app.Config.UploadDir)

	catalogRepo := repository.CreateCatalogRepository(app.DB)
	orderRepo := repository.CreateOrderRepository(app.DB)

	catalogSvc := service.CreateCatalogService(catalogRepo, app.Config.UploadDir)
	orderSvc := service.CreateOrderService(orderRepo, gateway, mailer, publisher, app.Config.PaymentExpiry)

	controller.CreateCatalogController(e, catalogSvc)
	controller.CreateOrderController(e, orderSvc)

	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			time.Minute,
		),
		gocron.NewTask(
			orderSvc.ExpireStalePayments,
		),
	)
	if err != nil {
		return err
	}

	s.Start()
	defer s.Shutdown()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	return waitForShutdown(e, serverErr, quit)
}

// waitForShutdown blocks until the listener fails or a termination signal
// arrives; on a signal it drains in-flight requests before returning.
func waitForShutdown(e *echo.Echo, serverErr <-chan error, quit <-chan os.Signal) error {
	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-quit:
		log.Info().Msg("Termination signal received, shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return e.Shutdown(ctx)
	}
}

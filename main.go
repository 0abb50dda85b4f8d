package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/comandahq/comanda/internal/dashboard"
	"github.com/comandahq/comanda/internal/mongo"
	"github.com/comandahq/comanda/internal/order"
	"github.com/comandahq/comanda/internal/site"
	"github.com/comandahq/comanda/internal/stream"
	"github.com/comandahq/comanda/pkg"
)

const (
	appNamespace = "COMANDA"
	appName      = "comanda"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	baseRepo := mongo.NewBaseRepo(config, logger)
	err = baseRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	orderRepo := mongo.NewOrderRepo(db)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	broadcaster := stream.NewBroadcaster(sub, logger)

	orderHandler := order.NewHandler(order.HandlerDeps{
		OrderRepo: orderRepo,
		Publisher: pub,
	}, config, logger)

	dashboardHandler := dashboard.NewHandler(dashboard.HandlerDeps{
		OrderRepo: orderRepo,
	}, config, logger)

	sseHandler := stream.NewSSEHandler(broadcaster, logger)
	siteHandler := site.NewHandler(config, logger)

	indexHooks := apt.LifecycleHooks{
		OnStart: orderRepo.EnsureIndexes,
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return sub.Close()
		},
	}

	// Public surface for in-restaurant displays, so CORS stays on.
	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		indexHooks,
		broadcaster,
		publisherLifecycle,
		subLifecycle,
	}

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", orderHandler, dashboardHandler, sseHandler, siteHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"optiroute/cmd"
	amqpin "optiroute/internal/adapters/in/amqp"
	httpin "optiroute/internal/adapters/in/http"
	amqpout "optiroute/internal/adapters/out/amqp"
	"optiroute/internal/adapters/out/postgres/jobrepo"
	"optiroute/internal/jobs"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := os.MkdirAll(configs.UploadDir, 0o755); err != nil {
		log.Fatalf("Error creating upload directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs.PostgresDSN())

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	processHandler, err := app.CreateProcessJobCommandHandler()
	if err != nil {
		log.Fatalf("Error building job processor: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		amqpin.Listen(ctx, configs.RabbitMQURL, configs.JobQueue, processHandler, amqpin.DefaultRetryInterval, logger)
	}()

	conn, err := amqpin.Connect(ctx, configs.RabbitMQURL, amqpin.DefaultRetryInterval, logger)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Error opening RabbitMQ channel: %v", err)
	}
	defer channel.Close()

	publisher, err := amqpout.NewPublisher(channel, configs.JobQueue)
	if err != nil {
		log.Fatalf("Error creating job publisher: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateListJobsQueryHandler(), configs.StuckJobThreshold, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := httpin.NewServer(
		configs.UploadDir,
		app.CreateCreateJobCommandHandler(publisher),
		app.CreateGetJobQueryHandler(),
		app.CreateListJobsQueryHandler(),
		logger,
	)
	startWebServer(ctx, server, configs.HTTPPort)

	wg.Wait()
	logger.Info("Worker stopped")
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}

	if err := gormDB.AutoMigrate(&jobrepo.JobDTO{}); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	return gormDB
}

// startWebServer blocks until ctx is done and the server has shut down.
func startWebServer(ctx context.Context, server *httpin.Server, port string) {
	e, err := httpin.NewEcho(server)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

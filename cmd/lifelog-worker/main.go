package main

import (
	"context"
	"errors"
	"os"
	"time"

	"lifelog/internal/amqp"
	"lifelog/internal/cli"
	"lifelog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting lifelog-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// The worker writes the activity feed into the same database the API
	// serves it from.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	activityWorker := worker.NewActivityWorker(repo)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	go func() {
		handler := func(msg *amqp.ChangeMessage) error {
			return activityWorker.HandleChange(ctx, msg)
		}
		if err := amqpClient.ConsumeChanges(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
		}
	}()

	logger.Info("Consuming record changes", "queue", cfg.AMQPQueue, "exchange", cfg.AMQPExchange)
	cli.WaitForShutdown(ctx, done)
}

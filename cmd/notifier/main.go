package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"venuebook/internal/notifications"
	"venuebook/internal/shared/config"
	"venuebook/pkg/logger"
)

// The notifier drains the Kafka notification topic and logs each message.
// Delivery channels such as email or SMS plug in as another Handler.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	appLogger := logger.NewWithLevel(cfg.LogLevel)
	logger.SetDefault(appLogger)

	if cfg.Broker.Driver != "kafka" {
		appLogger.Error("notifier only consumes from kafka", slog.String("driver", cfg.Broker.Driver))
		os.Exit(1)
	}

	consumerCfg := notifications.DefaultConsumerConfig()
	if len(cfg.Broker.KafkaBrokers) > 0 {
		consumerCfg.Brokers = cfg.Broker.KafkaBrokers
	}
	if cfg.Broker.KafkaTopic != "" {
		consumerCfg.Topics = []string{cfg.Broker.KafkaTopic}
	}

	consumer, err := notifications.NewConsumer(consumerCfg, notifications.LogHandler(appLogger), appLogger)
	if err != nil {
		appLogger.Error("failed to start notification consumer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			appLogger.Error("failed to close consumer", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Notifier consuming",
		slog.Any("brokers", consumerCfg.Brokers),
		slog.Any("topics", consumerCfg.Topics),
		slog.String("group", consumerCfg.GroupID),
	)
	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("consumer stopped", slog.Any("error", err))
	}
	appLogger.Info("Notifier exited gracefully")
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"cabroster/internal/notifier/handler"
	"cabroster/pkg/config"
	"cabroster/pkg/kafka"
	kafka_config "cabroster/pkg/kafka/config"
	kafka_middleware "cabroster/pkg/kafka/middleware"
	"cabroster/pkg/model"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "cabroster-notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")

	kafkaCfg := kafka_config.Load()
	kafkaCfg.Brokers = cfg.KafkaBrokers

	notifier := handler.NewNotifier(cfg.Log)

	bookingConsumer := newConsumer(cfg, kafkaCfg, model.TopicBookingEvents, model.TopicBookingEventsDLQ, notifier)
	userConsumer := newConsumer(cfg, kafkaCfg, model.TopicUserEvents, model.TopicUserEventsDLQ, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for _, consumer := range []*kafka.Consumer{bookingConsumer, userConsumer} {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				cfg.Log.Error("Consumer stopped", "error", err)
			}
		}(consumer)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown

	cfg.Log.Info("Shutdown signal received", "signal", sig)
	cancel()
	wg.Wait()

	for _, consumer := range []*kafka.Consumer{bookingConsumer, userConsumer} {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close consumer", "error", err)
		}
	}

	cfg.Log.Info("Notifier stopped gracefully")
}

func newConsumer(cfg *config.Config, kafkaCfg *kafka_config.Config, topic, dlqTopic string, notifier *handler.Notifier) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(kafkaCfg, topic, consumerGroup, dlqTopic, notifier.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "topic", topic, "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	return consumer
}

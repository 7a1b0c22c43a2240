package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/config"
	"github.com/nbfilms/studio-api/internal/events"
	"github.com/nbfilms/studio-api/internal/mailer"
	"github.com/nbfilms/studio-api/internal/platform/kafka"
	"github.com/nbfilms/studio-api/internal/platform/logger"
)

const (
	serviceName     = "studio-mailer"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.LoadMailer()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	sender := mailer.NewSMTPSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	relay := mailer.NewServer(sender, cfg.FeedbackBaseURL, log)
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: relay.Router(),
	}

	consumer := mailer.NewEventConsumer(
		kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupPrefix+"mailer", events.TopicBookingEvents, log),
		sender,
		cfg.StudioInbox,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("consuming booking events", zap.Strings("brokers", cfg.Kafka.Brokers))
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	go func() {
		log.Info("mail relay listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("relay failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := consumer.Close(); err != nil {
		log.Error("failed to close consumer", zap.Error(err))
	}
	log.Info("mailer stopped")
}

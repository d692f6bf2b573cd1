package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	kafkalib "github.com/s21platform/kafka-lib"
	logger_lib "github.com/s21platform/logger-lib"
	"github.com/s21platform/metrics-lib/pkg"

	"github.com/s21platform/assistant-service/internal/client/ai"
	"github.com/s21platform/assistant-service/internal/client/centrifugo"
	"github.com/s21platform/assistant-service/internal/config"
	userdatabus "github.com/s21platform/assistant-service/internal/databus/user"
	"github.com/s21platform/assistant-service/internal/infra"
	"github.com/s21platform/assistant-service/internal/pkg/jwt"
	"github.com/s21platform/assistant-service/internal/pkg/tx"
	"github.com/s21platform/assistant-service/internal/pkg/validator"
	db "github.com/s21platform/assistant-service/internal/repository/postgres"
	"github.com/s21platform/assistant-service/internal/rest"
	"github.com/s21platform/assistant-service/internal/session"
)

// The user events consumer lives in the service process so it can revoke the
// in-memory sessions it shares with the REST surface.
const userEventsConsumerGroupID = "assistant-user-events"

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	dbRepo := db.New(cfg)
	defer dbRepo.Close()

	changeStream, err := db.NewChangeStream(cfg, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to start change stream: %v", err))
		return
	}
	defer changeStream.Close()

	centrifugeClient := centrifugo.New(cfg)
	defer centrifugeClient.Close()

	aiClient := ai.New(cfg)
	defer aiClient.Close()

	gate := session.New(dbRepo, dbRepo, dbRepo, aiClient, changeStream, centrifugeClient)

	vldtr := validator.New()
	sessionTokens := jwt.New(cfg.Service.JWTSecret)
	centrifugeTokens := jwt.New(cfg.Centrifuge.JWTSecret)

	metrics, err := pkg.NewMetrics(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Service.Name, cfg.Platform.Env)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to connect graphite: %v", err))
	}

	ctx := context.WithValue(context.Background(), config.KeyMetrics, metrics)
	ctx = context.WithValue(ctx, config.KeyLogger, logger)

	consumerConfig := kafkalib.DefaultConsumerConfig(
		cfg.Kafka.Host,
		cfg.Kafka.Port,
		cfg.Kafka.UserTopic,
		userEventsConsumerGroupID,
	)
	consumer, err := kafkalib.NewConsumer(consumerConfig, metrics)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create consumer: %v", err))
	}

	userHandler := userdatabus.New(dbRepo, gate)
	consumer.RegisterHandler(ctx, userHandler.Handler)

	handler := rest.New(gate, vldtr, centrifugeTokens)
	router := chi.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return infra.AuthInterceptorHTTP(next, sessionTokens)
	})
	router.Use(func(next http.Handler) http.Handler {
		return infra.LoggerHTTP(next, logger)
	})
	router.Use(func(next http.Handler) http.Handler {
		return tx.TxMiddlewareHTTP(dbRepo)(next)
	})

	rest.RegisterRoutes(router, handler)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Service.Port),
		Handler: router,
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}

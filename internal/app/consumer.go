package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"zestpay/internal/config"
	"zestpay/internal/disbursement"
	"zestpay/internal/events"
	"zestpay/internal/messaging/kafka/consumer"
	"zestpay/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer membaca event withdrawal yang disetujui dan mencatat
// pencairannya.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")
	cfg := config.Load()

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	disbursementRepo := disbursement.NewRepository(gormDB)
	disbursementService := disbursement.NewService(disbursementRepo)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.WithdrawalApprovedTopic,
		GroupID:        "zestpay-disbursement",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeWithdrawalApproved(ctx, reader, disbursementService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/database"
	"mentorhub/internal/logging"
	"mentorhub/internal/repository"

	"go.uber.org/zap"
)

// refunds lists paid checkouts that could not be booked in full and
// need a manual refund.
func main() {
	limit := flag.Int("limit", 100, "maximum payments to list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payments, err := repository.NewPaymentRepository(db).ListNeedingRefund(ctx, *limit)
	if err != nil {
		logger.Fatal("list payments failed", zap.Error(err))
	}
	for _, p := range payments {
		fields := []zap.Field{
			zap.String("intent_id", p.IntentID),
			zap.Int64("user_id", p.UserID),
			zap.Int64("amount_cents", p.AmountCents),
			zap.String("reason", p.FailureReason),
		}
		if p.PaidAt != nil {
			fields = append(fields, zap.Time("paid_at", *p.PaidAt))
		}
		logger.Warn("payment needs refund", fields...)
	}
	logger.Info("refund scan finished", zap.Int("count", len(payments)))
}

package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies goose migrations on PostgreSQL and AutoMigrate elsewhere.
func Migrate(ctx context.Context, db *gorm.DB, dsn string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if !IsPostgres(dsn) {
		log.Info("running AutoMigrate")
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	log.Info("applying database migrations")
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	log.Info("migrations applied", zap.Int64("version", version))
	return nil
}

// AutoMigrate creates every table from the domain models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.MentorProfile{},
		&domain.AvailabilitySlot{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.OnboardingState{},
	)
}

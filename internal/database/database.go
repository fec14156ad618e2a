package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
)

// Models lists every table owned by the application, in migration order.
var Models = []interface{}{
	&models.User{},
	&models.APIKey{},
	&models.FundInfo{},
	&models.SocialLink{},
	&models.BankDetail{},
	&models.Feedback{},
	&models.DonationCampaign{},
	&models.Wallet{},
	&models.Publication{},
	&models.PublicationImage{},
	&models.PublicationVideo{},
	&models.TgUser{},
}

// NewGormConfig returns the GORM settings shared by the server and tests.
func NewGormConfig(level logger.LogLevel) *gorm.Config {
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}
}

// InitDB opens the PostgreSQL connection pool and migrates the schema
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Error
	if cfg.App.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL()), NewGormConfig(level))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.PoolSize)
	sqlDB.SetMaxOpenConns(cfg.Database.PoolSize + cfg.Database.MaxOverflow)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// Migrate creates or updates every table and applies the column fixes that
// AutoMigrate does not cover.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Campaigns used to carry a target amount that is no longer collected
	m := db.Migrator()
	if m.HasColumn("donation_campaigns", "target_amount") {
		logrus.Info("Dropping target_amount column from donation_campaigns table...")
		if err := m.DropColumn("donation_campaigns", "target_amount"); err != nil {
			logrus.Warnf("Failed to drop target_amount column: %v", err)
		} else {
			logrus.Info("Successfully dropped target_amount column")
		}
	}
	return nil
}

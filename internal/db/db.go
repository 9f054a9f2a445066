package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Pending and confirmed appointments of a business may not overlap on the
// same date. Enforced in the database as well as in the booking path.
const overlapConstraint = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
    ) THEN
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            business_id WITH =,
            appointment_date WITH =,
            int4range(start_minute, end_minute) WITH &&
        )
        WHERE (status IN ('pending', 'confirmed'));
    END IF;
END
$$;`

// No business holds more than one active subscription.
const oneActiveSubscription = `
CREATE UNIQUE INDEX IF NOT EXISTS subscriptions_one_active
ON subscriptions (business_id)
WHERE status = 'active'`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Business{},
		&models.Service{},
		&models.BusinessHours{},
		&models.Appointment{},
		&models.Subscription{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(overlapConstraint).Error; err != nil {
		return fmt.Errorf("create overlap constraint: %w", err)
	}

	if err := db.Exec(oneActiveSubscription).Error; err != nil {
		return fmt.Errorf("create active subscription index: %w", err)
	}

	if err := db.Exec(`
        UPDATE businesses
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTimezone).Error; err != nil {
		return fmt.Errorf("backfill timezone: %w", err)
	}

	return nil
}

package db

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/covenant"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/payment"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/syndicate"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector opens gorm on any dialector (tests inject a mocked
// one), verifies connectivity and applies pool limits.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Maps driver duplicate-key failures to gorm.ErrDuplicatedKey so the
		// loan-number unique constraint surfaces as a validation error.
		TranslateError: true,
	}
	gdb, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates the schema for every entity table.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&borrower.Borrower{},
		&borrower.FinancialStatement{},
		&loan.Loan{},
		&syndicate.Participant{},
		&syndicate.Portion{},
		&covenant.Covenant{},
		&payment.Payment{},
	)
}

// Package testdb opens throwaway in-memory sqlite databases with the full
// schema migrated, for repository and usecase tests.
package testdb

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/covenant"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/payment"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/syndicate"
)

// loanSQLite mirrors the loans table without the MySQL ENUM column, which
// sqlite cannot migrate. Tests read and write through the domain model; only
// the migration uses this shadow.
type loanSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	LoanNumber      string         `gorm:"size:20;not null;uniqueIndex:ux_loans_number"`
	BorrowerID      uint64         `gorm:"not null;index:idx_loans_borrower"`
	Amount          float64        `gorm:"column:amount"`
	OriginationDate time.Time      `gorm:"column:origination_date"`
	MaturityDate    time.Time      `gorm:"column:maturity_date"`
	InterestRate    float64        `gorm:"column:interest_rate"`
	Status          string         `gorm:"type:text;column:status"`
	Purpose         string         `gorm:"size:200"`
	RiskRating      string         `gorm:"size:4"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (loanSQLite) TableName() string { return "loans" }

// Open returns an in-memory database with every table migrated. TranslateError
// is on so duplicate-key violations surface as gorm.ErrDuplicatedKey, same as
// the production MySQL connection.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&loanSQLite{},
		&borrower.Borrower{},
		&borrower.FinancialStatement{},
		&syndicate.Participant{},
		&syndicate.Portion{},
		&payment.Payment{},
		&covenant.Covenant{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

package borrower

import (
	"time"

	"gorm.io/gorm"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
)

// UnspecifiedIndustry is the bucket label for borrowers without an industry.
const UnspecifiedIndustry = "Not specified"

// Borrower is an entity that can hold multiple loans and financial
// statements. Never deleted while referenced by a loan.
type Borrower struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Industry     string          `gorm:"size:50" json:"industry,omitempty"`
	CreditRating loan.RiskRating `gorm:"size:4" json:"credit_rating,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Borrower) TableName() string { return "borrowers" }

// IndustryLabel returns the industry or the explicit unspecified bucket.
func (b *Borrower) IndustryLabel() string {
	if b.Industry == "" {
		return UnspecifiedIndustry
	}
	return b.Industry
}

// FinancialStatement is a historical record for a borrower. Immutable after
// creation.
type FinancialStatement struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	BorrowerID    uint64    `gorm:"not null;index:idx_statements_borrower" json:"borrower_id"`
	StatementDate time.Time `gorm:"type:date;not null" json:"statement_date"`
	Revenue       float64   `gorm:"type:decimal(18,2)" json:"revenue"`
	EBITDA        float64   `gorm:"type:decimal(18,2);column:ebitda" json:"ebitda"`
	NetIncome     float64   `gorm:"type:decimal(18,2)" json:"net_income"`
	TotalAssets   float64   `gorm:"type:decimal(18,2)" json:"total_assets"`
	TotalDebt     float64   `gorm:"type:decimal(18,2)" json:"total_debt"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FinancialStatement) TableName() string { return "financial_statements" }

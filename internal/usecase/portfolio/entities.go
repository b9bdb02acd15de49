package portfolio

import (
	"time"

	loanuc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/loan"
)

// Overview aggregates the active loan book. Exposure figures are
// syndication-based on original face amounts; payment activity never moves
// them, only the per-loan remaining principal.
type Overview struct {
	TotalPortfolioSize    float64            `json:"total_portfolio_size"`
	TotalSyndicated       float64            `json:"total_syndicated"`
	RetainedExposure      float64            `json:"retained_exposure"`
	SyndicationPercentage float64            `json:"syndication_percentage"`
	ActiveLoansCount      int                `json:"active_loans_count"`
	RiskBreakdown         map[string]float64 `json:"risk_breakdown"`
	IndustryBreakdown     map[string]float64 `json:"industry_breakdown"`
}

type SyndicationReport struct {
	Loans               []loanuc.SyndicationStatus `json:"loans"`
	ParticipantExposure map[string]float64         `json:"participant_exposure"`
}

// MaturityBucket is retained exposure maturing in one calendar quarter.
type MaturityBucket struct {
	Period string  `json:"period"` // "2026 Q1"
	Amount float64 `json:"amount"`
}

type CovenantInfo struct {
	ID          uint64   `json:"id"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Threshold   *float64 `json:"threshold,omitempty"`
}

type LoanCovenants struct {
	LoanNumber string         `json:"loan_number"`
	Borrower   string         `json:"borrower"`
	Covenants  []CovenantInfo `json:"covenants"`
}

// HistoryEntry is one actual payment with running totals.
type HistoryEntry struct {
	Date                time.Time `json:"date"`
	Principal           float64   `json:"principal"`
	Interest            float64   `json:"interest"`
	Fees                float64   `json:"fees"`
	Total               float64   `json:"total"`
	CumulativePrincipal float64   `json:"cumulative_principal"`
	RemainingPrincipal  float64   `json:"remaining_principal"`
}

type FutureEntry struct {
	Date      time.Time `json:"date"`
	Principal float64   `json:"principal"`
	Interest  float64   `json:"interest"`
	Fees      float64   `json:"fees"`
	Total     float64   `json:"total"`
}

type Performance struct {
	Metrics        *loanuc.Metrics `json:"loan_metrics"`
	PaymentHistory []HistoryEntry  `json:"payment_history"`
	FuturePayments []FutureEntry   `json:"future_payments"`
}

// ExportRow is one flat loan record for the export collaborator; the core
// owns the values, not the output format.
type ExportRow struct {
	LoanNumber            string    `json:"loan_number"`
	Borrower              string    `json:"borrower"`
	Industry              string    `json:"industry"`
	Amount                float64   `json:"amount"`
	RemainingPrincipal    float64   `json:"remaining_principal"`
	OriginationDate       time.Time `json:"origination_date"`
	MaturityDate          time.Time `json:"maturity_date"`
	InterestRate          float64   `json:"interest_rate"`
	Status                string    `json:"status"`
	RiskRating            string    `json:"risk_rating"`
	SyndicationPercentage float64   `json:"syndication_percentage"`
}

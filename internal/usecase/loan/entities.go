package loan

import (
	"time"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
)

type CreateLoanInput struct {
	LoanNumber      string
	BorrowerID      uint64
	Amount          float64
	OriginationDate time.Time
	MaturityDate    time.Time
	InterestRate    float64
	Purpose         string
	RiskRating      domain.RiskRating
	Status          domain.Status // empty means pending
}

type LoanDTO struct {
	LoanNumber      string            `json:"loan_number"`
	BorrowerID      uint64            `json:"borrower_id"`
	Amount          float64           `json:"amount"`
	OriginationDate time.Time         `json:"origination_date"`
	MaturityDate    time.Time         `json:"maturity_date"`
	InterestRate    float64           `json:"interest_rate"`
	Status          domain.Status     `json:"status"`
	StatusLabel     string            `json:"status_label"`
	Purpose         string            `json:"purpose,omitempty"`
	RiskRating      domain.RiskRating `json:"risk_rating,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func toLoanDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanNumber:      l.LoanNumber,
		BorrowerID:      l.BorrowerID,
		Amount:          l.Amount,
		OriginationDate: l.OriginationDate,
		MaturityDate:    l.MaturityDate,
		InterestRate:    l.InterestRate,
		Status:          l.Status,
		StatusLabel:     l.Status.Label(),
		Purpose:         l.Purpose,
		RiskRating:      l.RiskRating,
		CreatedAt:       l.CreatedAt,
	}
}

type ListFilter struct {
	Status     domain.Status
	BorrowerID uint64
	RiskRating domain.RiskRating
}

type AddPortionInput struct {
	LoanNumber        string
	ParticipantID     uint64
	Amount            float64
	ParticipationDate time.Time
}

type PortionDTO struct {
	ParticipantID     uint64    `json:"participant_id"`
	Amount            float64   `json:"amount"`
	ParticipationDate time.Time `json:"participation_date"`
}

// PortionStatus is one syndicate entry inside a SyndicationStatus summary.
type PortionStatus struct {
	ParticipantID     uint64    `json:"participant_id"`
	ParticipantName   string    `json:"participant_name"`
	Amount            float64   `json:"amount"`
	Percentage        float64   `json:"percentage"`
	ParticipationDate time.Time `json:"participation_date"`
}

type SyndicationStatus struct {
	LoanNumber            string          `json:"loan_number"`
	TotalAmount           float64         `json:"total_amount"`
	TotalSyndicated       float64         `json:"total_syndicated"`
	RemainingToSyndicate  float64         `json:"remaining_to_syndicate"`
	SyndicationPercentage float64         `json:"syndication_percentage"`
	Portions              []PortionStatus `json:"portions"`
}

type RegisterPaymentInput struct {
	LoanNumber      string
	PaymentDate     time.Time
	PrincipalAmount float64
	InterestAmount  float64
	FeesAmount      float64
}

type PaymentDTO struct {
	PaymentDate     time.Time `json:"payment_date"`
	PrincipalAmount float64   `json:"principal_amount"`
	InterestAmount  float64   `json:"interest_amount"`
	FeesAmount      float64   `json:"fees_amount"`
	IsScheduled     bool      `json:"is_scheduled"`
}

type ScheduleInput struct {
	LoanNumber      string
	StartDate       time.Time
	FrequencyMonths int // defaults to 1
	NumPayments     int // 0 derives the count from the maturity date
}

type AddCovenantInput struct {
	LoanNumber     string
	Description    string
	CovenantType   string
	ThresholdValue *float64
}

type CovenantDTO struct {
	ID             uint64   `json:"id"`
	Description    string   `json:"description"`
	CovenantType   string   `json:"covenant_type"`
	ThresholdValue *float64 `json:"threshold_value,omitempty"`
	IsActive       bool     `json:"is_active"`
}

type CreateParticipantInput struct {
	Name            string
	InstitutionType string
	ContactEmail    string
}

type ParticipantDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	InstitutionType string `json:"institution_type,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
}

// Metrics carries every per-loan figure the reporting layers consume.
type Metrics struct {
	LoanNumber            string  `json:"loan_number"`
	BorrowerName          string  `json:"borrower_name"`
	OriginalAmount        float64 `json:"original_amount"`
	RemainingPrincipal    float64 `json:"remaining_principal"`
	PrincipalPaid         float64 `json:"principal_paid"`
	InterestPaid          float64 `json:"interest_paid"`
	FeesPaid              float64 `json:"fees_paid"`
	DaysToMaturity        int     `json:"days_to_maturity"`
	SyndicationPercentage float64 `json:"syndication_percentage"`
	RiskRating            string  `json:"risk_rating"`
	Status                string  `json:"status"`
}

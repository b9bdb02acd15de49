package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Status is the lifecycle state of a loan.
type Status string

const (
	StatusPending      Status = "pending"
	StatusActive       Status = "active"
	StatusPaidOff      Status = "paid_off"
	StatusDefault      Status = "default"
	StatusRestructured Status = "restructured"
)

// statusLabels is the single canonical status → display label mapping.
var statusLabels = map[Status]string{
	StatusPending:      "Pending",
	StatusActive:       "Active",
	StatusPaidOff:      "Paid Off",
	StatusDefault:      "Default",
	StatusRestructured: "Restructured",
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts the wire value ("paid_off") or the display label ("Paid Off").
func ParseStatus(v string) (Status, error) {
	if s := Status(v); s.Valid() {
		return s, nil
	}
	for s, label := range statusLabels {
		if label == v {
			return s, nil
		}
	}
	return "", errors.New("unknown loan status: " + v)
}

// transitions is the allowed status graph. PaidOff and Default are terminal.
var transitions = map[Status][]Status{
	StatusPending:      {StatusActive},
	StatusActive:       {StatusPaidOff, StatusDefault, StatusRestructured},
	StatusRestructured: {StatusActive, StatusDefault},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// RiskRating is an ordinal creditworthiness grade. Empty means unrated.
type RiskRating string

const (
	RatingAAA RiskRating = "AAA"
	RatingAA  RiskRating = "AA"
	RatingA   RiskRating = "A"
	RatingBBB RiskRating = "BBB"
	RatingBB  RiskRating = "BB"
	RatingB   RiskRating = "B"
	RatingCCC RiskRating = "CCC"
	RatingCC  RiskRating = "CC"
	RatingC   RiskRating = "C"
	RatingD   RiskRating = "D"
)

var ratings = []RiskRating{
	RatingAAA, RatingAA, RatingA, RatingBBB, RatingBB,
	RatingB, RatingCCC, RatingCC, RatingC, RatingD,
}

// UnratedLabel is the bucket label for loans/borrowers without a rating.
const UnratedLabel = "Not rated"

func (r RiskRating) Label() string {
	if r == "" {
		return UnratedLabel
	}
	return string(r)
}

func (r RiskRating) Valid() bool {
	for _, v := range ratings {
		if v == r {
			return true
		}
	}
	return false
}

func ParseRiskRating(v string) (RiskRating, error) {
	if v == "" {
		return "", nil
	}
	if r := RiskRating(v); r.Valid() {
		return r, nil
	}
	return "", errors.New("unknown risk rating: " + v)
}

// Loan is a syndicated commercial loan. OriginationDate and MaturityDate are
// calendar dates (midnight UTC). Total syndicated and remaining principal are
// derived from related rows on every read, never stored.
type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanNumber      string         `gorm:"size:20;not null;uniqueIndex:ux_loans_number" json:"loan_number"`
	BorrowerID      uint64         `gorm:"not null;index:idx_loans_borrower" json:"borrower_id"`
	Amount          float64        `gorm:"type:decimal(18,2);not null" json:"amount"`
	OriginationDate time.Time      `gorm:"type:date;not null" json:"origination_date"`
	MaturityDate    time.Time      `gorm:"type:date;not null" json:"maturity_date"`
	InterestRate    float64        `gorm:"type:decimal(8,6);not null" json:"interest_rate"`
	Status          Status         `gorm:"type:enum('pending','active','paid_off','default','restructured');default:'pending';index" json:"status"`
	Purpose         string         `gorm:"size:200" json:"purpose,omitempty"`
	RiskRating      RiskRating     `gorm:"size:4" json:"risk_rating,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// RemainingPrincipal derives the outstanding balance given the sum of
// principal across actual (non-scheduled) payments.
func (l *Loan) RemainingPrincipal(principalPaid float64) float64 {
	return l.Amount - principalPaid
}

// SyndicationPercentage derives the syndicated share of the face amount,
// guarding a zero amount (returns 0, never NaN/Inf).
func (l *Loan) SyndicationPercentage(totalSyndicated float64) float64 {
	if l.Amount <= 0 {
		return 0
	}
	return totalSyndicated / l.Amount * 100
}

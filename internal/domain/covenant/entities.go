package covenant

import "time"

// Covenant is a contractual condition attached to a loan. ThresholdValue is
// nil for purely descriptive covenants. No expiry or versioning is modeled.
type Covenant struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"id"`
	LoanID         uint64    `gorm:"not null;index:idx_covenants_loan" json:"-"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	CovenantType   string    `gorm:"size:50" json:"covenant_type"`
	ThresholdValue *float64  `gorm:"type:decimal(18,4)" json:"threshold_value,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Covenant) TableName() string { return "covenants" }

package syndicate

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a financial institution taking part in syndicated loans.
type Participant struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	InstitutionType string         `gorm:"size:50" json:"institution_type,omitempty"`
	ContactEmail    string         `gorm:"size:100" json:"contact_email,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Participant) TableName() string { return "syndicate_participants" }

// Portion is an irrevocable allocation of part of a loan's exposure to a
// participant. There is no removal operation.
type Portion struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"id"`
	LoanID            uint64    `gorm:"not null;index:idx_portions_loan" json:"-"`
	ParticipantID     uint64    `gorm:"not null;index:idx_portions_participant" json:"participant_id"`
	Amount            float64   `gorm:"type:decimal(18,2);not null" json:"amount"`
	ParticipationDate time.Time `gorm:"type:date;not null" json:"participation_date"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Portion) TableName() string { return "syndicate_portions" }

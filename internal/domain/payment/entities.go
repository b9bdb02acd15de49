package payment

import "time"

// Payment is a single payment row for a loan. Scheduled (forward-looking
// amortization entries) and actual payments share this shape; IsScheduled is
// the sole discriminator. Scheduled rows are wholly replaced whenever a new
// schedule is generated.
type Payment struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID          uint64    `gorm:"not null;index:idx_payments_loan" json:"-"`
	PaymentDate     time.Time `gorm:"type:date;not null" json:"payment_date"`
	PrincipalAmount float64   `gorm:"type:decimal(18,2);default:0" json:"principal_amount"`
	InterestAmount  float64   `gorm:"type:decimal(18,2);default:0" json:"interest_amount"`
	FeesAmount      float64   `gorm:"type:decimal(18,2);default:0" json:"fees_amount"`
	IsScheduled     bool      `gorm:"not null;index:idx_payments_loan" json:"is_scheduled"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// Total is the full cash amount of the payment.
func (p *Payment) Total() float64 {
	return p.PrincipalAmount + p.InterestAmount + p.FeesAmount
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) CreateBatch(ctx context.Context, ps []paymentDomain.Payment) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ps).Error
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date, id").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) SumPrincipalPaid(ctx context.Context, loanID uint64) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).
		Select("SUM(principal_amount)").
		Where("loan_id = ? AND is_scheduled = ?", loanID, false).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *PaymentRepository) DeleteScheduledByLoan(ctx context.Context, loanID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND is_scheduled = ?", loanID, true).
		Delete(&paymentDomain.Payment{})
	return res.RowsAffected, res.Error
}

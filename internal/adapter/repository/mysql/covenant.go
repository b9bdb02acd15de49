package mysql

import (
	"context"

	"gorm.io/gorm"

	covenantDomain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/covenant"
)

type CovenantRepository struct{ db *gorm.DB }

func NewCovenantRepository(db *gorm.DB) *CovenantRepository { return &CovenantRepository{db: db} }

func (r *CovenantRepository) Create(ctx context.Context, c *covenantDomain.Covenant) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CovenantRepository) ListByLoan(ctx context.Context, loanID uint64) ([]covenantDomain.Covenant, error) {
	var out []covenantDomain.Covenant
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Order("id").Find(&out)
	return out, res.Error
}

func (r *CovenantRepository) ListActiveByLoan(ctx context.Context, loanID uint64) ([]covenantDomain.Covenant, error) {
	var out []covenantDomain.Covenant
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND is_active = ?", loanID, true).
		Order("id").
		Find(&out)
	return out, res.Error
}

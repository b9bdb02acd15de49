package mysql

import (
	"context"

	"gorm.io/gorm"

	borrowerDomain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) GetByID(ctx context.Context, id uint64) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]borrowerDomain.Borrower, error) {
	out := make(map[uint64]borrowerDomain.Borrower, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []borrowerDomain.Borrower
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, b := range rows {
		out[b.ID] = b
	}
	return out, nil
}

func (r *BorrowerRepository) CreateStatement(ctx context.Context, s *borrowerDomain.FinancialStatement) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *BorrowerRepository) ListStatements(ctx context.Context, borrowerID uint64) ([]borrowerDomain.FinancialStatement, error) {
	var out []borrowerDomain.FinancialStatement
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("statement_date").
		Find(&out)
	return out, res.Error
}

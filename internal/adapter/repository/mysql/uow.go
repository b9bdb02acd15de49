package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:      &LoanRepository{db: tx},
		Borrowers:  &BorrowerRepository{db: tx},
		Payments:   &PaymentRepository{db: tx},
		Covenants:  &CovenantRepository{db: tx},
		Syndicates: &SyndicateRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// Lock the loan row up front so validate-and-write sequences on it
		// cannot interleave.
		l, err := r.Loans.GetByNumberForUpdate(ctx, loanNumber)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

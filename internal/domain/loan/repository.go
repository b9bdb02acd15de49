package loan

import "context"

// Filter narrows List results; zero-valued fields are ignored and the
// remaining conditions are conjunctive.
type Filter struct {
	Status     Status
	BorrowerID uint64
	RiskRating RiskRating
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByNumber(ctx context.Context, loanNumber string) (*Loan, error)
	// GetByNumberForUpdate locks the loan row for the remainder of the
	// enclosing transaction.
	GetByNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
}

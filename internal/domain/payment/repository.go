package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	CreateBatch(ctx context.Context, ps []Payment) error
	ListByLoan(ctx context.Context, loanID uint64) ([]Payment, error)
	// SumPrincipalPaid totals principal across actual (non-scheduled)
	// payments for a loan.
	SumPrincipalPaid(ctx context.Context, loanID uint64) (float64, error)
	// DeleteScheduledByLoan removes every scheduled row for the loan,
	// returning the number of rows deleted.
	DeleteScheduledByLoan(ctx context.Context, loanID uint64) (int64, error)
}

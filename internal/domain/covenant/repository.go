package covenant

import "context"

type Repository interface {
	Create(ctx context.Context, c *Covenant) error
	ListByLoan(ctx context.Context, loanID uint64) ([]Covenant, error)
	ListActiveByLoan(ctx context.Context, loanID uint64) ([]Covenant, error)
}

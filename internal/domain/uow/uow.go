package uow

import (
	"context"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/covenant"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/payment"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/syndicate"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Loans      loan.Repository
	Borrowers  borrower.Repository
	Payments   payment.Repository
	Covenants  covenant.Repository
	Syndicates syndicate.Repository
}

// UnitOfWork runs a function against transaction-bound repositories. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// failed validation never leaves partial rows behind.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row identified by loanNumber up front,
	// then passes it to fn. Validate-and-write sequences on one loan
	// (syndication cap, remaining-principal checks, schedule replacement,
	// status transitions) run under this lock.
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}

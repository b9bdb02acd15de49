package loanmock

import (
	"context"
	"errors"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository. Write
// methods default to success, reads to an error.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByNumberFn          func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByNumberForUpdateFn func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	ListFn                 func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
}

var errUnimplemented = errors.New("loanmock: method not implemented")

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, loanNumber)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByNumberForUpdateFn != nil {
		return m.GetByNumberForUpdateFn(ctx, loanNumber)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, errUnimplemented
}

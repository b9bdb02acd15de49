package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByID(ctx context.Context, id uint64) (*Borrower, error)
	// GetByIDs returns the found borrowers keyed by id; missing ids are
	// simply absent from the map.
	GetByIDs(ctx context.Context, ids []uint64) (map[uint64]Borrower, error)
	CreateStatement(ctx context.Context, s *FinancialStatement) error
	ListStatements(ctx context.Context, borrowerID uint64) ([]FinancialStatement, error)
}

package syndicate

import "context"

type Repository interface {
	CreateParticipant(ctx context.Context, p *Participant) error
	GetParticipantByID(ctx context.Context, id uint64) (*Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)

	CreatePortion(ctx context.Context, p *Portion) error
	ListPortionsByLoan(ctx context.Context, loanID uint64) ([]Portion, error)
	ListPortionsByParticipant(ctx context.Context, participantID uint64) ([]Portion, error)
	// SumByLoan returns the total syndicated amount for one loan.
	SumByLoan(ctx context.Context, loanID uint64) (float64, error)
	// SumByLoanIDs returns total syndicated amounts keyed by loan id; loans
	// with no portions are absent from the map.
	SumByLoanIDs(ctx context.Context, loanIDs []uint64) (map[uint64]float64, error)
}

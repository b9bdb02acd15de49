package mysql

import (
	"context"

	"gorm.io/gorm"

	syndicateDomain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/syndicate"
)

type SyndicateRepository struct{ db *gorm.DB }

func NewSyndicateRepository(db *gorm.DB) *SyndicateRepository { return &SyndicateRepository{db: db} }

func (r *SyndicateRepository) CreateParticipant(ctx context.Context, p *syndicateDomain.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *SyndicateRepository) GetParticipantByID(ctx context.Context, id uint64) (*syndicateDomain.Participant, error) {
	var out syndicateDomain.Participant
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *SyndicateRepository) ListParticipants(ctx context.Context) ([]syndicateDomain.Participant, error) {
	var out []syndicateDomain.Participant
	res := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, res.Error
}

func (r *SyndicateRepository) CreatePortion(ctx context.Context, p *syndicateDomain.Portion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *SyndicateRepository) ListPortionsByLoan(ctx context.Context, loanID uint64) ([]syndicateDomain.Portion, error) {
	var out []syndicateDomain.Portion
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id").
		Find(&out)
	return out, res.Error
}

func (r *SyndicateRepository) ListPortionsByParticipant(ctx context.Context, participantID uint64) ([]syndicateDomain.Portion, error) {
	var out []syndicateDomain.Portion
	res := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("id").
		Find(&out)
	return out, res.Error
}

func (r *SyndicateRepository) SumByLoan(ctx context.Context, loanID uint64) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&syndicateDomain.Portion{}).
		Select("SUM(amount)").
		Where("loan_id = ?", loanID).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *SyndicateRepository) SumByLoanIDs(ctx context.Context, loanIDs []uint64) (map[uint64]float64, error) {
	out := make(map[uint64]float64, len(loanIDs))
	if len(loanIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		LoanID uint64
		Total  float64
	}
	err := r.db.WithContext(ctx).Model(&syndicateDomain.Portion{}).
		Select("loan_id, SUM(amount) AS total").
		Where("loan_id IN ?", loanIDs).
		Group("loan_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.LoanID] = row.Total
	}
	return out, nil
}

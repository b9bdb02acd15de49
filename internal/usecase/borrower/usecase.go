package borrower

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/uow"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/apperr"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/dates"
)

type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
}

func NewUsecase(u uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, log: log}
}

type CreateInput struct {
	Name         string
	Industry     string
	CreditRating loan.RiskRating
}

type BorrowerDTO struct {
	ID           uint64          `json:"id"`
	Name         string          `json:"name"`
	Industry     string          `json:"industry,omitempty"`
	CreditRating loan.RiskRating `json:"credit_rating,omitempty"`
}

type AddStatementInput struct {
	BorrowerID    uint64
	StatementDate time.Time
	Revenue       float64
	EBITDA        float64
	NetIncome     float64
	TotalAssets   float64
	TotalDebt     float64
}

type StatementDTO struct {
	ID            uint64    `json:"id"`
	BorrowerID    uint64    `json:"borrower_id"`
	StatementDate time.Time `json:"statement_date"`
	Revenue       float64   `json:"revenue"`
	EBITDA        float64   `json:"ebitda"`
	NetIncome     float64   `json:"net_income"`
	TotalAssets   float64   `json:"total_assets"`
	TotalDebt     float64   `json:"total_debt"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*BorrowerDTO, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("name", "is required")
	}
	if in.CreditRating != "" && !in.CreditRating.Valid() {
		return nil, apperr.Validationf("credit_rating", "unknown rating %q", in.CreditRating)
	}
	b := &domain.Borrower{Name: in.Name, Industry: in.Industry, CreditRating: in.CreditRating}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Borrowers.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Uint64("borrower_id", b.ID).Str("name", b.Name).Msg("borrower created")
	return &BorrowerDTO{ID: b.ID, Name: b.Name, Industry: b.Industry, CreditRating: b.CreditRating}, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*BorrowerDTO, error) {
	var dto *BorrowerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		dto = &BorrowerDTO{ID: b.ID, Name: b.Name, Industry: b.Industry, CreditRating: b.CreditRating}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("borrower", id)
		}
		return nil, err
	}
	return dto, nil
}

// AddStatement attaches an immutable financial statement to a borrower.
func (u *Usecase) AddStatement(ctx context.Context, in AddStatementInput) (*StatementDTO, error) {
	s := &domain.FinancialStatement{
		BorrowerID:    in.BorrowerID,
		StatementDate: dates.Midnight(in.StatementDate),
		Revenue:       in.Revenue,
		EBITDA:        in.EBITDA,
		NetIncome:     in.NetIncome,
		TotalAssets:   in.TotalAssets,
		TotalDebt:     in.TotalDebt,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Borrowers.GetByID(ctx, in.BorrowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("borrower", in.BorrowerID)
			}
			return err
		}
		return r.Borrowers.CreateStatement(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return toStatementDTO(s), nil
}

func (u *Usecase) ListStatements(ctx context.Context, borrowerID uint64) ([]StatementDTO, error) {
	var out []StatementDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Borrowers.GetByID(ctx, borrowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("borrower", borrowerID)
			}
			return err
		}
		ss, err := r.Borrowers.ListStatements(ctx, borrowerID)
		if err != nil {
			return err
		}
		out = make([]StatementDTO, 0, len(ss))
		for i := range ss {
			out = append(out, *toStatementDTO(&ss[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toStatementDTO(s *domain.FinancialStatement) *StatementDTO {
	return &StatementDTO{
		ID:            s.ID,
		BorrowerID:    s.BorrowerID,
		StatementDate: s.StatementDate,
		Revenue:       s.Revenue,
		EBITDA:        s.EBITDA,
		NetIncome:     s.NetIncome,
		TotalAssets:   s.TotalAssets,
		TotalDebt:     s.TotalDebt,
	}
}

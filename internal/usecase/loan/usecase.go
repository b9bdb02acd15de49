package loan

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/covenant"
	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/payment"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/syndicate"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/uow"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/apperr"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/dates"
)

// amountEpsilon absorbs float rounding when comparing monetary sums, e.g. the
// syndication cap and the fully-repaid check.
const amountEpsilon = 1e-6

// Usecase is the loan lifecycle manager. Every public operation validates
// before mutating and runs in a single transaction; operations that
// read-then-write an existing loan lock its row first.
type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
	now func() time.Time
}

func NewUsecase(u uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, log: log, now: time.Now}
}

// Create originates a new loan in pending state unless an explicit initial
// status is supplied.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.LoanNumber == "" {
		return nil, apperr.Validationf("loan_number", "is required")
	}
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount", "must be positive")
	}
	if !in.MaturityDate.After(in.OriginationDate) {
		return nil, apperr.Validationf("maturity_date", "must be after origination date")
	}
	if in.RiskRating != "" && !in.RiskRating.Valid() {
		return nil, apperr.Validationf("risk_rating", "unknown rating %q", in.RiskRating)
	}
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, apperr.Validationf("status", "unknown status %q", in.Status)
	}

	l := &domain.Loan{
		LoanNumber:      in.LoanNumber,
		BorrowerID:      in.BorrowerID,
		Amount:          in.Amount,
		OriginationDate: dates.Midnight(in.OriginationDate),
		MaturityDate:    dates.Midnight(in.MaturityDate),
		InterestRate:    in.InterestRate,
		Status:          status,
		Purpose:         in.Purpose,
		RiskRating:      in.RiskRating,
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Borrowers.GetByID(ctx, in.BorrowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("borrower", in.BorrowerID)
			}
			return err
		}
		if _, err := r.Loans.GetByNumber(ctx, in.LoanNumber); err == nil {
			return apperr.Validationf("loan_number", "loan %s already exists", in.LoanNumber)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			// The unique index backstops the check above against races.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Validationf("loan_number", "loan %s already exists", in.LoanNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("loan_number", l.LoanNumber).Uint64("borrower_id", l.BorrowerID).
		Float64("amount", l.Amount).Msg("loan created")
	return toLoanDTO(l), nil
}

// UpdateStatus moves a loan through its status graph. Transitions outside the
// graph are rejected.
func (u *Usecase) UpdateStatus(ctx context.Context, loanNumber string, next domain.Status) (*LoanDTO, error) {
	if !next.Valid() {
		return nil, apperr.Validationf("status", "unknown status %q", next)
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *domain.Loan) error {
		if !l.Status.CanTransition(next) {
			return apperr.Validationf("status", "cannot transition from %s to %s", l.Status, next)
		}
		prev := l.Status
		l.Status = next
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		u.log.Info().Str("loan_number", l.LoanNumber).
			Str("from", string(prev)).Str("to", string(next)).Msg("loan status updated")
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, loanNumber)
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanNumber string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByNumber(ctx, loanNumber)
		if err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, loanNumber)
	}
	return dto, nil
}

// List returns loans matching the conjunction of the optional filters.
func (u *Usecase) List(ctx context.Context, f ListFilter) ([]LoanDTO, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validationf("status", "unknown status %q", f.Status)
	}
	if f.RiskRating != "" && !f.RiskRating.Valid() {
		return nil, apperr.Validationf("risk_rating", "unknown rating %q", f.RiskRating)
	}
	var out []LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ls, err := r.Loans.List(ctx, domain.Filter{
			Status:     f.Status,
			BorrowerID: f.BorrowerID,
			RiskRating: f.RiskRating,
		})
		if err != nil {
			return err
		}
		out = make([]LoanDTO, 0, len(ls))
		for i := range ls {
			out = append(out, *toLoanDTO(&ls[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddSyndicatePortion allocates part of the loan to a participant. The cap
// check and the insert run under the loan row lock, so concurrent callers
// cannot jointly oversyndicate.
func (u *Usecase) AddSyndicatePortion(ctx context.Context, in AddPortionInput) (*PortionDTO, error) {
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount", "must be positive")
	}
	var dto *PortionDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanNumber, func(r uow.Repos, l *domain.Loan) error {
		if _, err := r.Syndicates.GetParticipantByID(ctx, in.ParticipantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("participant", in.ParticipantID)
			}
			return err
		}
		current, err := r.Syndicates.SumByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		if current+in.Amount > l.Amount+amountEpsilon {
			return apperr.Validationf("amount",
				"cannot syndicate beyond the loan amount: current %.2f, loan %.2f, requested %.2f",
				current, l.Amount, in.Amount)
		}
		p := &syndicate.Portion{
			LoanID:            l.ID,
			ParticipantID:     in.ParticipantID,
			Amount:            in.Amount,
			ParticipationDate: dates.Midnight(in.ParticipationDate),
		}
		if err := r.Syndicates.CreatePortion(ctx, p); err != nil {
			return err
		}
		u.log.Info().Str("loan_number", l.LoanNumber).Uint64("participant_id", in.ParticipantID).
			Float64("amount", in.Amount).Msg("syndicate portion added")
		dto = &PortionDTO{
			ParticipantID:     p.ParticipantID,
			Amount:            p.Amount,
			ParticipationDate: p.ParticipationDate,
		}
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, in.LoanNumber)
	}
	return dto, nil
}

// SyndicationStatus summarizes the loan's syndicate with zero-guarded
// percentages.
func (u *Usecase) SyndicationStatus(ctx context.Context, loanNumber string) (*SyndicationStatus, error) {
	var out *SyndicationStatus
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByNumber(ctx, loanNumber)
		if err != nil {
			return err
		}
		out, err = u.SyndicationStatusIn(ctx, r, l)
		return err
	})
	if err != nil {
		return nil, MapLookupErr(err, loanNumber)
	}
	return out, nil
}

// SyndicationStatusIn computes the syndication summary inside an existing
// transaction. Shared with the portfolio reporting usecase.
func (u *Usecase) SyndicationStatusIn(ctx context.Context, r uow.Repos, l *domain.Loan) (*SyndicationStatus, error) {
	portions, err := r.Syndicates.ListPortionsByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	var total float64
	entries := make([]PortionStatus, 0, len(portions))
	for _, p := range portions {
		total += p.Amount
		name := ""
		switch part, err := r.Syndicates.GetParticipantByID(ctx, p.ParticipantID); {
		case err == nil:
			name = part.Name
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
		entries = append(entries, PortionStatus{
			ParticipantID:     p.ParticipantID,
			ParticipantName:   name,
			Amount:            p.Amount,
			Percentage:        l.SyndicationPercentage(p.Amount),
			ParticipationDate: p.ParticipationDate,
		})
	}
	return &SyndicationStatus{
		LoanNumber:            l.LoanNumber,
		TotalAmount:           l.Amount,
		TotalSyndicated:       total,
		RemainingToSyndicate:  l.Amount - total,
		SyndicationPercentage: l.SyndicationPercentage(total),
		Portions:              entries,
	}, nil
}

// RegisterPayment records an actual payment. When the remaining principal
// reaches zero the loan auto-transitions to paid off, provided the status
// graph allows it from the current state.
func (u *Usecase) RegisterPayment(ctx context.Context, in RegisterPaymentInput) (*PaymentDTO, error) {
	if in.PrincipalAmount < 0 || in.InterestAmount < 0 || in.FeesAmount < 0 {
		return nil, apperr.Validationf("amount", "payment amounts cannot be negative")
	}
	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanNumber, func(r uow.Repos, l *domain.Loan) error {
		paid, err := r.Payments.SumPrincipalPaid(ctx, l.ID)
		if err != nil {
			return err
		}
		remaining := l.RemainingPrincipal(paid)
		if in.PrincipalAmount > remaining+amountEpsilon {
			return apperr.Validationf("principal_amount",
				"principal payment %.2f exceeds remaining principal %.2f", in.PrincipalAmount, remaining)
		}
		p := &payment.Payment{
			LoanID:          l.ID,
			PaymentDate:     dates.Midnight(in.PaymentDate),
			PrincipalAmount: in.PrincipalAmount,
			InterestAmount:  in.InterestAmount,
			FeesAmount:      in.FeesAmount,
			IsScheduled:     false,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		if remaining-in.PrincipalAmount <= amountEpsilon {
			if l.Status.CanTransition(domain.StatusPaidOff) {
				l.Status = domain.StatusPaidOff
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
				u.log.Info().Str("loan_number", l.LoanNumber).Msg("loan fully repaid, marked paid off")
			} else if l.Status != domain.StatusPaidOff {
				u.log.Warn().Str("loan_number", l.LoanNumber).Str("status", string(l.Status)).
					Msg("loan fully repaid but status cannot transition to paid off")
			}
		}
		u.log.Info().Str("loan_number", l.LoanNumber).
			Float64("principal", in.PrincipalAmount).Float64("interest", in.InterestAmount).
			Float64("fees", in.FeesAmount).Msg("payment registered")
		dto = &PaymentDTO{
			PaymentDate:     p.PaymentDate,
			PrincipalAmount: p.PrincipalAmount,
			InterestAmount:  p.InterestAmount,
			FeesAmount:      p.FeesAmount,
			IsScheduled:     false,
		}
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, in.LoanNumber)
	}
	return dto, nil
}

// AddCovenant attaches an active covenant to the loan.
func (u *Usecase) AddCovenant(ctx context.Context, in AddCovenantInput) (*CovenantDTO, error) {
	if in.Description == "" {
		return nil, apperr.Validationf("description", "is required")
	}
	var dto *CovenantDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByNumber(ctx, in.LoanNumber)
		if err != nil {
			return err
		}
		c := &covenant.Covenant{
			LoanID:         l.ID,
			Description:    in.Description,
			CovenantType:   in.CovenantType,
			ThresholdValue: in.ThresholdValue,
			IsActive:       true,
		}
		if err := r.Covenants.Create(ctx, c); err != nil {
			return err
		}
		u.log.Info().Str("loan_number", l.LoanNumber).Str("type", in.CovenantType).Msg("covenant added")
		dto = &CovenantDTO{
			ID:             c.ID,
			Description:    c.Description,
			CovenantType:   c.CovenantType,
			ThresholdValue: c.ThresholdValue,
			IsActive:       c.IsActive,
		}
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, in.LoanNumber)
	}
	return dto, nil
}

// CreateParticipant registers a syndicate participant institution.
func (u *Usecase) CreateParticipant(ctx context.Context, in CreateParticipantInput) (*ParticipantDTO, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("name", "is required")
	}
	p := &syndicate.Participant{
		Name:            in.Name,
		InstitutionType: in.InstitutionType,
		ContactEmail:    in.ContactEmail,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Syndicates.CreateParticipant(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return &ParticipantDTO{
		ID:              p.ID,
		Name:            p.Name,
		InstitutionType: p.InstitutionType,
		ContactEmail:    p.ContactEmail,
	}, nil
}

// Metrics computes the per-loan figures consumed by reporting and export.
func (u *Usecase) Metrics(ctx context.Context, loanNumber string) (*Metrics, error) {
	var out *Metrics
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByNumber(ctx, loanNumber)
		if err != nil {
			return err
		}
		m, err := u.metricsForLoan(ctx, r, l)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, loanNumber)
	}
	return out, nil
}

// metricsForLoan computes Metrics inside an existing transaction. Shared with
// the portfolio reporting usecase via MetricsIn.
func (u *Usecase) metricsForLoan(ctx context.Context, r uow.Repos, l *domain.Loan) (*Metrics, error) {
	b, err := r.Borrowers.GetByID(ctx, l.BorrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("borrower", l.BorrowerID)
		}
		return nil, err
	}
	ps, err := r.Payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	var principal, interest, fees float64
	for _, p := range ps {
		if p.IsScheduled {
			continue
		}
		principal += p.PrincipalAmount
		interest += p.InterestAmount
		fees += p.FeesAmount
	}
	syndicated, err := r.Syndicates.SumByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &Metrics{
		LoanNumber:            l.LoanNumber,
		BorrowerName:          b.Name,
		OriginalAmount:        l.Amount,
		RemainingPrincipal:    l.RemainingPrincipal(principal),
		PrincipalPaid:         principal,
		InterestPaid:          interest,
		FeesPaid:              fees,
		DaysToMaturity:        dates.DaysUntil(l.MaturityDate, u.now()),
		SyndicationPercentage: l.SyndicationPercentage(syndicated),
		RiskRating:            l.RiskRating.Label(),
		Status:                l.Status.Label(),
	}, nil
}

// MetricsIn exposes metricsForLoan to read-only collaborators that already
// hold transaction-bound repositories.
func (u *Usecase) MetricsIn(ctx context.Context, r uow.Repos, l *domain.Loan) (*Metrics, error) {
	return u.metricsForLoan(ctx, r, l)
}

// MapLookupErr translates a record-not-found from a loan lookup into the
// NotFoundError taxonomy; everything else passes through unchanged.
func MapLookupErr(err error, loanNumber string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("loan", loanNumber)
	}
	return err
}

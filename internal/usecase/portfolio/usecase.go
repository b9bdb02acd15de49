package portfolio

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/uow"
	loanuc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/loan"
)

// Usecase computes portfolio-level analytics. Read-only: it never mutates
// loan state and takes no locks.
type Usecase struct {
	uow   uow.UnitOfWork
	loans *loanuc.Usecase
	log   zerolog.Logger
}

func NewUsecase(u uow.UnitOfWork, loans *loanuc.Usecase, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, loans: loans, log: log}
}

// Overview aggregates exposure across active loans, with retained exposure
// broken down by risk rating label and borrower industry. Unrated and
// unspecified buckets are reported explicitly, never dropped.
func (u *Usecase) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{
		RiskBreakdown:     map[string]float64{},
		IndustryBreakdown: map[string]float64{},
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.List(ctx, domain.Filter{Status: domain.StatusActive})
		if err != nil {
			return err
		}
		ids := make([]uint64, 0, len(loans))
		borrowerIDs := make([]uint64, 0, len(loans))
		for _, l := range loans {
			ids = append(ids, l.ID)
			borrowerIDs = append(borrowerIDs, l.BorrowerID)
		}
		sums, err := r.Syndicates.SumByLoanIDs(ctx, ids)
		if err != nil {
			return err
		}
		borrowers, err := r.Borrowers.GetByIDs(ctx, borrowerIDs)
		if err != nil {
			return err
		}

		for _, l := range loans {
			syndicated := sums[l.ID]
			retained := l.Amount - syndicated

			out.TotalPortfolioSize += l.Amount
			out.TotalSyndicated += syndicated
			out.RiskBreakdown[l.RiskRating.Label()] += retained

			industry := borrower.UnspecifiedIndustry
			if b, ok := borrowers[l.BorrowerID]; ok {
				industry = b.IndustryLabel()
			}
			out.IndustryBreakdown[industry] += retained
		}
		out.RetainedExposure = out.TotalPortfolioSize - out.TotalSyndicated
		if out.TotalPortfolioSize > 0 {
			out.SyndicationPercentage = out.TotalSyndicated / out.TotalPortfolioSize * 100
		}
		out.ActiveLoansCount = len(loans)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SyndicationReport collects per-loan syndication summaries for active loans
// plus each participant's exposure to the active book.
func (u *Usecase) SyndicationReport(ctx context.Context) (*SyndicationReport, error) {
	out := &SyndicationReport{ParticipantExposure: map[string]float64{}}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.List(ctx, domain.Filter{Status: domain.StatusActive})
		if err != nil {
			return err
		}
		active := make(map[uint64]bool, len(loans))
		for _, l := range loans {
			active[l.ID] = true
		}
		for i := range loans {
			st, err := u.loans.SyndicationStatusIn(ctx, r, &loans[i])
			if err != nil {
				return err
			}
			out.Loans = append(out.Loans, *st)
		}

		participants, err := r.Syndicates.ListParticipants(ctx)
		if err != nil {
			return err
		}
		for _, p := range participants {
			portions, err := r.Syndicates.ListPortionsByParticipant(ctx, p.ID)
			if err != nil {
				return err
			}
			var exposure float64
			for _, portion := range portions {
				if active[portion.LoanID] {
					exposure += portion.Amount
				}
			}
			out.ParticipantExposure[p.Name] = exposure
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MaturityProfile groups retained exposure of active loans by the calendar
// quarter in which they mature, sorted chronologically.
func (u *Usecase) MaturityProfile(ctx context.Context) ([]MaturityBucket, error) {
	buckets := map[string]float64{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.List(ctx, domain.Filter{Status: domain.StatusActive})
		if err != nil {
			return err
		}
		for _, l := range loans {
			syndicated, err := r.Syndicates.SumByLoan(ctx, l.ID)
			if err != nil {
				return err
			}
			quarter := (int(l.MaturityDate.Month())-1)/3 + 1
			period := fmt.Sprintf("%d Q%d", l.MaturityDate.Year(), quarter)
			buckets[period] += l.Amount - syndicated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]MaturityBucket, 0, len(buckets))
	for period, amount := range buckets {
		out = append(out, MaturityBucket{Period: period, Amount: amount})
	}
	// "YYYY Qn" sorts chronologically as a plain string.
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

// CovenantCompliance lists active covenants per active loan.
func (u *Usecase) CovenantCompliance(ctx context.Context) ([]LoanCovenants, error) {
	var out []LoanCovenants
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.List(ctx, domain.Filter{Status: domain.StatusActive})
		if err != nil {
			return err
		}
		borrowerIDs := make([]uint64, 0, len(loans))
		for _, l := range loans {
			borrowerIDs = append(borrowerIDs, l.BorrowerID)
		}
		borrowers, err := r.Borrowers.GetByIDs(ctx, borrowerIDs)
		if err != nil {
			return err
		}
		for _, l := range loans {
			cs, err := r.Covenants.ListActiveByLoan(ctx, l.ID)
			if err != nil {
				return err
			}
			infos := make([]CovenantInfo, 0, len(cs))
			for _, c := range cs {
				infos = append(infos, CovenantInfo{
					ID:          c.ID,
					Type:        c.CovenantType,
					Description: c.Description,
					Threshold:   c.ThresholdValue,
				})
			}
			name := ""
			if b, ok := borrowers[l.BorrowerID]; ok {
				name = b.Name
			}
			out = append(out, LoanCovenants{LoanNumber: l.LoanNumber, Borrower: name, Covenants: infos})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Performance reports a loan's payment history with running balances, its
// future schedule, and its metrics.
func (u *Usecase) Performance(ctx context.Context, loanNumber string) (*Performance, error) {
	out := &Performance{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByNumber(ctx, loanNumber)
		if err != nil {
			return err
		}
		ps, err := r.Payments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		sort.Slice(ps, func(i, j int) bool { return ps[i].PaymentDate.Before(ps[j].PaymentDate) })

		var cumulative float64
		for _, p := range ps {
			if p.IsScheduled {
				out.FuturePayments = append(out.FuturePayments, FutureEntry{
					Date:      p.PaymentDate,
					Principal: p.PrincipalAmount,
					Interest:  p.InterestAmount,
					Fees:      p.FeesAmount,
					Total:     p.Total(),
				})
				continue
			}
			cumulative += p.PrincipalAmount
			out.PaymentHistory = append(out.PaymentHistory, HistoryEntry{
				Date:                p.PaymentDate,
				Principal:           p.PrincipalAmount,
				Interest:            p.InterestAmount,
				Fees:                p.FeesAmount,
				Total:               p.Total(),
				CumulativePrincipal: cumulative,
				RemainingPrincipal:  l.Amount - cumulative,
			})
		}

		m, err := u.loans.MetricsIn(ctx, r, l)
		if err != nil {
			return err
		}
		out.Metrics = m
		return nil
	})
	if err != nil {
		return nil, loanuc.MapLookupErr(err, loanNumber)
	}
	return out, nil
}

// ExportRows flattens every loan (any status) into export records.
func (u *Usecase) ExportRows(ctx context.Context) ([]ExportRow, error) {
	var out []ExportRow
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.List(ctx, domain.Filter{})
		if err != nil {
			return err
		}
		ids := make([]uint64, 0, len(loans))
		borrowerIDs := make([]uint64, 0, len(loans))
		for _, l := range loans {
			ids = append(ids, l.ID)
			borrowerIDs = append(borrowerIDs, l.BorrowerID)
		}
		sums, err := r.Syndicates.SumByLoanIDs(ctx, ids)
		if err != nil {
			return err
		}
		borrowers, err := r.Borrowers.GetByIDs(ctx, borrowerIDs)
		if err != nil {
			return err
		}
		out = make([]ExportRow, 0, len(loans))
		for _, l := range loans {
			paid, err := r.Payments.SumPrincipalPaid(ctx, l.ID)
			if err != nil {
				return err
			}
			var name, industry string
			if b, ok := borrowers[l.BorrowerID]; ok {
				name, industry = b.Name, b.Industry
			}
			out = append(out, ExportRow{
				LoanNumber:            l.LoanNumber,
				Borrower:              name,
				Industry:              industry,
				Amount:                l.Amount,
				RemainingPrincipal:    l.RemainingPrincipal(paid),
				OriginationDate:       l.OriginationDate,
				MaturityDate:          l.MaturityDate,
				InterestRate:          l.InterestRate,
				Status:                l.Status.Label(),
				RiskRating:            l.RiskRating.Label(),
				SyndicationPercentage: l.SyndicationPercentage(sums[l.ID]),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Debug().Int("rows", len(out)).Msg("portfolio export rows built")
	return out, nil
}

package loan

import (
	"context"
	"time"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/payment"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/domain/uow"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/apperr"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/dates"
)

// SchedulePayments replaces the loan's amortization schedule. Existing
// scheduled rows are deleted and the new set inserted in the same
// transaction, under the loan row lock, so two concurrent calls cannot
// interleave into a mixed schedule.
func (u *Usecase) SchedulePayments(ctx context.Context, in ScheduleInput) ([]PaymentDTO, error) {
	freq := in.FrequencyMonths
	if freq == 0 {
		freq = 1
	}
	if freq < 0 {
		return nil, apperr.Validationf("frequency_months", "must be positive")
	}
	if in.NumPayments < 0 {
		return nil, apperr.Validationf("num_payments", "must be positive")
	}

	var out []PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanNumber, func(r uow.Repos, l *domain.Loan) error {
		n := in.NumPayments
		if n == 0 {
			// Whole months to maturity at the given frequency, plus one
			// period to cover the final partial stretch.
			months := dates.MonthsBetween(in.StartDate, l.MaturityDate)
			if months < 0 {
				return apperr.Validationf("start_date", "is after the maturity date")
			}
			n = months/freq + 1
		}

		paid, err := r.Payments.SumPrincipalPaid(ctx, l.ID)
		if err != nil {
			return err
		}
		remaining := l.RemainingPrincipal(paid)

		rows := buildSchedule(l, remaining, dates.Midnight(in.StartDate), freq, n)

		deleted, err := r.Payments.DeleteScheduledByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		if err := r.Payments.CreateBatch(ctx, rows); err != nil {
			return err
		}

		u.log.Info().Str("loan_number", l.LoanNumber).Int("payments", n).
			Int64("replaced", deleted).Float64("principal", remaining).Msg("payment schedule generated")

		out = make([]PaymentDTO, 0, len(rows))
		for _, p := range rows {
			out = append(out, PaymentDTO{
				PaymentDate:     p.PaymentDate,
				PrincipalAmount: p.PrincipalAmount,
				InterestAmount:  p.InterestAmount,
				FeesAmount:      p.FeesAmount,
				IsScheduled:     true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, MapLookupErr(err, in.LoanNumber)
	}
	return out, nil
}

// buildSchedule produces n scheduled payments starting at start, stepping by
// freq months. Every date is offset from the start date, so the day of month
// clamps on short months and comes back on long ones (Jan 31, Feb 29, Mar 31).
// Straight-line amortization: equal principal slices, with the final period
// absorbing the residual so the schedule sums exactly to the remaining balance
// despite rounding. Interest is a simple non-compounding monthly
// approximation, balance × rate/12 per period regardless of frequency.
func buildSchedule(l *domain.Loan, remaining float64, start time.Time, freq, n int) []payment.Payment {
	per := remaining / float64(n)
	balance := remaining

	rows := make([]payment.Payment, 0, n)
	for i := 0; i < n; i++ {
		principal := per
		if i == n-1 {
			principal = balance
		}
		rows = append(rows, payment.Payment{
			LoanID:          l.ID,
			PaymentDate:     dates.AddMonths(start, i*freq),
			PrincipalAmount: principal,
			InterestAmount:  balance * l.InterestRate / 12,
			FeesAmount:      0,
			IsScheduled:     true,
		})
		balance -= principal
	}
	return rows
}

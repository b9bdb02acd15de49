package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/testutil/testdb"
)

func makeLoan(number string, borrowerID uint64) *domain.Loan {
	return &domain.Loan{
		LoanNumber:      number,
		BorrowerID:      borrowerID,
		Amount:          1_000_000,
		OriginationDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		MaturityDate:    time.Date(2029, 1, 15, 0, 0, 0, 0, time.UTC),
		InterestRate:    0.055,
		Status:          domain.StatusPending,
	}
}

func TestLoanCreateAndGetByNumber(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan("LN-2024-001", 1)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByNumber(ctx, "LN-2024-001")
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if got.LoanNumber != "LN-2024-001" || got.Amount != 1_000_000 {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanCreate_DuplicateNumber(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeLoan("LN-2024-001", 1)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, makeLoan("LN-2024-001", 2))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate loan_number err = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestLoanGetByNumber_NotFound(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByNumber(context.Background(), "LN-MISSING")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestLoanSaveUpdatesStatus(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan("LN-2024-002", 1)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	l.Status = domain.StatusActive
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("status = %s, want active", got.Status)
	}
}

func TestLoanList_Filters(t *testing.T) {
	db := testdb.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := makeLoan("LN-A", 1)
	a.Status = domain.StatusActive
	a.RiskRating = domain.RatingBBB
	b := makeLoan("LN-B", 2)
	b.Status = domain.StatusActive
	c := makeLoan("LN-C", 1)
	for _, l := range []*domain.Loan{a, b, c} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create %s: %v", l.LoanNumber, err)
		}
	}

	all, err := repo.List(ctx, domain.Filter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("List all: %v, n=%d", err, len(all))
	}

	active, err := repo.List(ctx, domain.Filter{Status: domain.StatusActive})
	if err != nil || len(active) != 2 {
		t.Fatalf("List active: %v, n=%d", err, len(active))
	}

	mine, err := repo.List(ctx, domain.Filter{BorrowerID: 1, Status: domain.StatusActive})
	if err != nil || len(mine) != 1 || mine[0].LoanNumber != "LN-A" {
		t.Fatalf("List borrower+status: %v, %+v", err, mine)
	}

	rated, err := repo.List(ctx, domain.Filter{RiskRating: domain.RatingBBB})
	if err != nil || len(rated) != 1 {
		t.Fatalf("List rated: %v, n=%d", err, len(rated))
	}
}

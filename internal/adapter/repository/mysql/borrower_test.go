package mysql

import (
	"context"
	"testing"
	"time"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/borrower"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/testutil/testdb"
)

func TestBorrowerGetByIDs_MissingIDsAbsent(t *testing.T) {
	db := testdb.Open(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	a := &domain.Borrower{Name: "Acme Manufacturing", Industry: "manufacturing"}
	b := &domain.Borrower{Name: "Globex"}
	for _, x := range []*domain.Borrower{a, b} {
		if err := repo.Create(ctx, x); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.GetByIDs(ctx, []uint64{a.ID, b.ID, 9999})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[a.ID].Name != "Acme Manufacturing" {
		t.Fatalf("wrong row: %+v", got[a.ID])
	}
	if _, ok := got[9999]; ok {
		t.Fatal("missing id present in map")
	}

	empty, err := repo.GetByIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("GetByIDs(nil) = %+v, %v", empty, err)
	}
}

func TestStatements_OrderedByDate(t *testing.T) {
	db := testdb.Open(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	b := &domain.Borrower{Name: "Acme"}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dates := []time.Time{
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		s := &domain.FinancialStatement{BorrowerID: b.ID, StatementDate: d, Revenue: 1000}
		if err := repo.CreateStatement(ctx, s); err != nil {
			t.Fatalf("CreateStatement: %v", err)
		}
	}

	got, err := repo.ListStatements(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListStatements: %v", err)
	}
	if len(got) != 2 || !got[0].StatementDate.Before(got[1].StatementDate) {
		t.Fatalf("statements out of order: %+v", got)
	}
}

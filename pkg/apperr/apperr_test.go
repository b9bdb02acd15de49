package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationf(t *testing.T) {
	err := Validationf("amount", "must be positive, got %v", -5)
	if got, want := err.Error(), "amount: must be positive, got -5"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !IsValidation(err) {
		t.Fatal("IsValidation = false")
	}
	if IsNotFound(err) {
		t.Fatal("IsNotFound = true for validation error")
	}
}

func TestAsValidation_Wrapped(t *testing.T) {
	inner := Validationf("status", "cannot transition")
	wrapped := fmt.Errorf("update loan: %w", inner)
	ve, ok := AsValidation(wrapped)
	if !ok {
		t.Fatal("AsValidation failed on wrapped error")
	}
	if ve.Field != "status" {
		t.Fatalf("Field = %q", ve.Field)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("loan", "LN-2024-001")
	if got, want := err.Error(), "loan LN-2024-001 not found"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !IsNotFound(fmt.Errorf("get: %w", err)) {
		t.Fatal("IsNotFound = false for wrapped error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Fatal("IsNotFound = true for plain error")
	}
}

func TestNotFound_NumericKey(t *testing.T) {
	err := NotFound("borrower", uint64(42))
	if err.Key != "42" {
		t.Fatalf("Key = %q", err.Key)
	}
}

package errors

import (
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := NewNotFound("abc123")
	want := "NOT_FOUND: chart not found: abc123"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
}

func TestNewInvalidDate_Details(t *testing.T) {
	err := NewInvalidDate(2023, 2, 29)
	if err.Code != ErrInvalidDate {
		t.Errorf("Code = %s, want INVALID_DATE", err.Code)
	}
	if err.Details["year"] != 2023 || err.Details["month"] != 2 || err.Details["day"] != 29 {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestIs(t *testing.T) {
	err := NewNameAlreadyExists("zhang-san")
	if !Is(err, ErrNameAlreadyExists) {
		t.Error("Is should match NAME_ALREADY_EXISTS")
	}
	if Is(err, ErrNotFound) {
		t.Error("Is should not match NOT_FOUND")
	}
	if Is(fmt.Errorf("plain error"), ErrInternal) {
		t.Error("Is should not match plain errors")
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want fallback", err.Message)
	}
}

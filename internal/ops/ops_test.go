package ops

import (
	"database/sql"
	"testing"

	"tianji/internal/db"
	"tianji/internal/errors"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func stringPtr(s string) *string {
	return &s
}

func TestValidateAddress_ByID(t *testing.T) {
	addr, err := ValidateAddress("01ABC123", "")
	if err != nil {
		t.Fatalf("ValidateAddress failed: %v", err)
	}

	if !addr.ByID {
		t.Error("ByID = false, want true")
	}
	if addr.ID != "01ABC123" {
		t.Errorf("ID = %q, want %q", addr.ID, "01ABC123")
	}
}

func TestValidateAddress_ByName(t *testing.T) {
	addr, err := ValidateAddress("", "  Li  QINGSHAN ")
	if err != nil {
		t.Fatalf("ValidateAddress failed: %v", err)
	}

	if addr.ByID {
		t.Error("ByID = true, want false")
	}
	if addr.Name != "li qingshan" {
		t.Errorf("Name = %q, want %q (normalized)", addr.Name, "li qingshan")
	}
}

func TestValidateAddress_BothProvided(t *testing.T) {
	_, err := ValidateAddress("01ABC123", "li qingshan")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want ErrInvalidRequest, got: %v", err)
	}
}

func TestValidateAddress_NeitherProvided(t *testing.T) {
	_, err := ValidateAddress("", "")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want ErrInvalidRequest, got: %v", err)
	}
}

func TestValidateAddress_WhitespaceName(t *testing.T) {
	_, err := ValidateAddress("", "   ")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want ErrInvalidRequest, got: %v", err)
	}
}

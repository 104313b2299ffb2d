package parking

import (
	"errors"
	"testing"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

func completeDraft() Draft {
	return Draft{
		Reason:       "Besøk fra familie",
		UnitNumber:   "12",
		LicensePlate: "AB 12345",
		Name:         "Kari Nordmann",
		Phone:        "123 45 678",
		Email:        "kari@eksempel.no",
	}
}

func TestValidate(t *testing.T) {
	dates := []calendar.Day{calendar.NewDay(2024, time.February, 10)}

	withUnit := func(unit string) Draft {
		d := completeDraft()
		d.UnitNumber = unit
		return d
	}
	withEmail := func(email string) Draft {
		d := completeDraft()
		d.Email = email
		return d
	}
	without := func(f Field) Draft {
		d := completeDraft()
		_ = d.Set(f, "  ")
		return d
	}

	tests := []struct {
		name    string
		dates   []calendar.Day
		draft   Draft
		wantErr error
	}{
		{"valid", dates, completeDraft(), nil},
		{"no dates", nil, completeDraft(), ErrNoDateSelected},
		{"no dates wins over bad unit", nil, withUnit("abc"), ErrNoDateSelected},
		{"unit zero", dates, withUnit("0"), ErrUnitOutOfRange},
		{"unit 66", dates, withUnit("66"), ErrUnitOutOfRange},
		{"unit not numeric", dates, withUnit("abc"), ErrUnitOutOfRange},
		{"unit empty", dates, withUnit(""), ErrUnitOutOfRange},
		{"unit lower bound", dates, withUnit("1"), nil},
		{"unit upper bound", dates, withUnit("65"), nil},
		{"unit with spaces", dates, withUnit(" 7 "), nil},
		{"missing reason", dates, without(FieldReason), ErrMissingField},
		{"missing plate", dates, without(FieldLicensePlate), ErrMissingField},
		{"missing email", dates, without(FieldEmail), ErrMissingField},
		{"email without domain", dates, withEmail("x"), ErrInvalidField},
		{"email with spaces around", dates, withEmail("  kari@eksempel.no "), nil},
		{"bad unit wins over bad email", dates, func() Draft { d := withEmail("x"); d.UnitNumber = "0"; return d }(), ErrUnitOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.dates, tt.draft)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldErrorNamesField(t *testing.T) {
	d := completeDraft()
	d.Phone = ""

	err := Validate([]calendar.Day{calendar.NewDay(2024, 2, 10)}, d)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Expected *FieldError, got %T", err)
	}
	if fieldErr.Field != FieldPhone {
		t.Errorf("Expected field phone, got %s", fieldErr.Field)
	}
	if Message(err) != "Vennligst fyll ut feltet: Telefonnummer" {
		t.Errorf("Unexpected message %q", Message(err))
	}
}

func TestDraftSetUnknownField(t *testing.T) {
	var d Draft
	if err := d.Set("favouriteColour", "blue"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
	if !d.IsEmpty() {
		t.Error("Draft should be untouched")
	}
}

func TestValidateReportsFirstFieldInFormOrder(t *testing.T) {
	d := completeDraft()
	d.Email = "x"
	d.Name = ""
	d.Reason = " "

	err := Validate([]calendar.Day{calendar.NewDay(2024, 2, 10)}, d)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Expected *FieldError, got %v", err)
	}
	if fieldErr.Field != FieldReason || !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected missing reason first, got %v", err)
	}
}

func TestInvalidEmailMessage(t *testing.T) {
	d := completeDraft()
	d.Email = "kari.eksempel.no"

	err := Validate([]calendar.Day{calendar.NewDay(2024, 2, 10)}, d)
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("Expected ErrInvalidField, got %v", err)
	}
	if Message(err) != "Ugyldig verdi i feltet: E-postadresse" {
		t.Errorf("Unexpected message %q", Message(err))
	}
}

func TestDraftTrimmed(t *testing.T) {
	d := Draft{Name: "  Kari ", Email: "\tkari@eksempel.no\n"}
	got := d.Trimmed()
	if got.Name != "Kari" || got.Email != "kari@eksempel.no" {
		t.Errorf("Unexpected trimmed draft %+v", got)
	}
	if d.Name != "  Kari " {
		t.Error("Trimmed must not modify the receiver")
	}
}

package parking

import (
	"errors"
	"fmt"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

// NoticeLevel is the severity of a toast
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient, dismissible notification shown after a form action
type Notice struct {
	Level       NoticeLevel `json:"level"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
}

// Labels are the Norwegian form labels
var Labels = map[Field]string{
	FieldReason:       "Grunn for parkering",
	FieldUnitNumber:   "Aksje-/Eiendomsnummer (Leilighetsnummer)",
	FieldLicensePlate: "Bilens Registreringsnummer",
	FieldName:         "Navn",
	FieldPhone:        "Telefonnummer",
	FieldEmail:        "E-postadresse",
}

// SuccessNotice confirms a submission of n days
func SuccessNotice(n int) Notice {
	return Notice{
		Level:       NoticeSuccess,
		Title:       "Parkeringssøknad sendt inn!",
		Description: fmt.Sprintf("Din forespørsel for %s er mottatt.", calendar.DayCount(n)),
	}
}

// ErrorNotice renders a validation error for the resident
func ErrorNotice(err error) Notice {
	return Notice{Level: NoticeError, Title: Message(err)}
}

// Message maps a validation error to the text shown to the resident
func Message(err error) string {
	var fieldErr *FieldError
	switch {
	case errors.Is(err, ErrNoDateSelected):
		return "Vennligst velg minst én dato fra kalenderen"
	case errors.Is(err, ErrUnitOutOfRange):
		return fmt.Sprintf("Leilighetsnummer må være mellom %d og %d", MinUnitNumber, MaxUnitNumber)
	case errors.As(err, &fieldErr) && errors.Is(err, ErrInvalidField):
		return "Ugyldig verdi i feltet: " + Labels[fieldErr.Field]
	case errors.As(err, &fieldErr):
		return "Vennligst fyll ut feltet: " + Labels[fieldErr.Field]
	default:
		return "Noe gikk galt, prøv igjen"
	}
}

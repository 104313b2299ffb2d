package parking

import (
	"context"
	"strings"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

// Field names a form input
type Field string

const (
	FieldReason       Field = "reason"
	FieldUnitNumber   Field = "unitNumber"
	FieldLicensePlate Field = "licensePlate"
	FieldName         Field = "name"
	FieldPhone        Field = "phone"
	FieldEmail        Field = "email"
)

// Fields lists the form inputs in display order
var Fields = []Field{FieldReason, FieldUnitNumber, FieldLicensePlate, FieldName, FieldPhone, FieldEmail}

// Draft holds the unvalidated form values
type Draft struct {
	Reason       string `json:"reason" form:"reason" validate:"required"`
	UnitNumber   string `json:"unitNumber" form:"unitNumber"`
	LicensePlate string `json:"licensePlate" form:"licensePlate" validate:"required"`
	Name         string `json:"name" form:"name" validate:"required"`
	Phone        string `json:"phone" form:"phone" validate:"required"`
	Email        string `json:"email" form:"email" validate:"required,email"`
}

// Trimmed returns d with surrounding whitespace removed from every field
func (d Draft) Trimmed() Draft {
	for _, f := range Fields {
		_ = d.Set(f, strings.TrimSpace(d.Get(f)))
	}
	return d
}

// Get returns the value bound to field
func (d Draft) Get(field Field) string {
	switch field {
	case FieldReason:
		return d.Reason
	case FieldUnitNumber:
		return d.UnitNumber
	case FieldLicensePlate:
		return d.LicensePlate
	case FieldName:
		return d.Name
	case FieldPhone:
		return d.Phone
	case FieldEmail:
		return d.Email
	}
	return ""
}

// Set binds value to field
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldReason:
		d.Reason = value
	case FieldUnitNumber:
		d.UnitNumber = value
	case FieldLicensePlate:
		d.LicensePlate = value
	case FieldName:
		d.Name = value
	case FieldPhone:
		d.Phone = value
	case FieldEmail:
		d.Email = value
	default:
		return &UnknownFieldError{Field: string(field)}
	}
	return nil
}

// IsEmpty reports whether no field has been filled
func (d Draft) IsEmpty() bool {
	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) != "" {
			return false
		}
	}
	return true
}

// Submission is what the form hands to the application list
type Submission struct {
	Dates []calendar.Day
	Draft
}

// Application is a finalized parking request
type Application struct {
	ID           string         `json:"id"`
	Dates        []calendar.Day `json:"dates"`
	Reason       string         `json:"reason"`
	UnitNumber   string         `json:"unitNumber"`
	LicensePlate string         `json:"licensePlate"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}

// DatesLabel is the localized date for a single day, otherwise the day count
func (a Application) DatesLabel() string {
	if len(a.Dates) == 1 {
		return a.Dates[0].Local()
	}
	return calendar.DayCount(len(a.Dates))
}

// Publisher forwards finalized applications to the outside world
type Publisher interface {
	Publish(ctx context.Context, app Application) error
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(ctx context.Context, app Application) error

func (f PublisherFunc) Publish(ctx context.Context, app Application) error {
	return f(ctx, app)
}

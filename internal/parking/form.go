package parking

import "github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"

// Form collects the six fields of one in-progress application
type Form struct {
	draft Draft
}

// Draft returns the current field values
func (f *Form) Draft() Draft {
	return f.draft
}

// Fill replaces all field values
func (f *Form) Fill(d Draft) {
	f.draft = d
}

// Set binds a single field
func (f *Form) Set(field Field, value string) error {
	return f.draft.Set(field, value)
}

// Reset empties every field
func (f *Form) Reset() {
	f.draft = Draft{}
}

// Submit validates the draft against dates. On success the submission is handed
// to emit, the fields are cleared and a success notice is returned. On failure
// nothing is emitted and the fields keep their values.
// Clearing the selected dates is left to the caller.
func (f *Form) Submit(dates []calendar.Day, emit func(Submission)) (Notice, error) {
	if err := Validate(dates, f.draft); err != nil {
		return ErrorNotice(err), err
	}

	submitted := make([]calendar.Day, len(dates))
	copy(submitted, dates)
	emit(Submission{Dates: submitted, Draft: f.draft})

	f.Reset()
	return SuccessNotice(len(submitted)), nil
}

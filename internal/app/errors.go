package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// HTTPErrorInfo is the status and message an error is answered with
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping maps one domain error
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
// An empty mapping message means the resident-facing text from parking.Message.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: ErrInternalServer,
	}
}

// WithMapping adds an error mapping to the mapper
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

// Map converts an error to HTTP status and message
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			msg := mapping.Message
			if msg == "" {
				msg = parking.Message(err)
			}
			return HTTPErrorInfo{Status: mapping.Status, Message: msg}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// DomainErrors is the mapper used by every handler
var DomainErrors = NewErrorMapper().
	WithMapping(calendar.ErrDayOutOfRange, http.StatusBadRequest, ErrInvalidDay).
	WithMapping(calendar.ErrUnknownDirection, http.StatusBadRequest, ErrInvalidDirection).
	WithMapping(parking.ErrUnknownField, http.StatusBadRequest, ErrInvalidBody).
	WithMapping(parking.ErrNoDateSelected, http.StatusUnprocessableEntity, "").
	WithMapping(parking.ErrUnitOutOfRange, http.StatusUnprocessableEntity, "").
	WithMapping(parking.ErrMissingField, http.StatusUnprocessableEntity, "").
	WithMapping(parking.ErrInvalidField, http.StatusUnprocessableEntity, "")

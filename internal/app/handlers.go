package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// handleIndex renders the calendar, the form and the results table.
// A pending notice is shown once.
func (s *Server) handleIndex(c echo.Context) error {
	snap := sessionOf(c).Snapshot(true)
	return c.Render(http.StatusOK, "index.html", newIndexPage(snap))
}

// keepDraft stores the typed field values posted along with a calendar button.
// Posts without any form field (a bare button) leave the stored draft alone.
func keepDraft(c echo.Context) error {
	var draft parking.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}
	for _, f := range parking.Fields {
		if _, ok := params[string(f)]; ok {
			sessionOf(c).UpdateDraft(draft)
			break
		}
	}
	return nil
}

func (s *Server) handleNavigateForm(c echo.Context) error {
	if err := keepDraft(c); err != nil {
		return err
	}
	dir, err := calendar.ParseDirection(c.FormValue("direction"))
	if err != nil {
		return s.fail(c, err)
	}
	sessionOf(c).Navigate(dir)
	return backToIndex(c)
}

func (s *Server) handleToggleForm(c echo.Context) error {
	if err := keepDraft(c); err != nil {
		return err
	}
	day, err := strconv.Atoi(c.FormValue("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidDay)
	}
	if _, err := sessionOf(c).Toggle(day); err != nil {
		return s.fail(c, err)
	}
	return backToIndex(c)
}

// handleSubmitForm submits the form. Validation failures are not HTTP errors:
// the error notice is shown on the redirected page with the fields kept.
func (s *Server) handleSubmitForm(c echo.Context) error {
	var draft parking.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}
	if _, _, err := sessionOf(c).SubmitForm(c.Request().Context(), draft); err != nil && !isValidation(err) {
		return s.fail(c, err)
	}
	return backToIndex(c)
}

type fieldInfo struct {
	Name  parking.Field `json:"name"`
	Label string        `json:"label"`
}

type configResponse struct {
	LeadTimeDays  int                     `json:"leadTimeDays"`
	MinUnitNumber int                     `json:"minUnitNumber"`
	MaxUnitNumber int                     `json:"maxUnitNumber"`
	Timezone      string                  `json:"timezone"`
	Today         calendar.Day            `json:"today"`
	Threshold     calendar.Day            `json:"threshold"`
	Fields        []fieldInfo             `json:"fields"`
	Holidays      map[calendar.Day]string `json:"holidays"`
}

// handleConfig returns the rules the client needs to render the form
func (s *Server) handleConfig(c echo.Context) error {
	now := s.clock.Now()
	resp := configResponse{
		LeadTimeDays:  calendar.LeadTimeDays,
		MinUnitNumber: parking.MinUnitNumber,
		MaxUnitNumber: parking.MaxUnitNumber,
		Timezone:      DefaultTimezone,
		Today:         calendar.DayOf(now),
		Threshold:     calendar.Threshold(now),
		Holidays:      calendar.Holidays(now.Year()),
	}
	if s.cfg.Location != nil {
		resp.Timezone = s.cfg.Location.String()
	}
	for _, f := range parking.Fields {
		resp.Fields = append(resp.Fields, fieldInfo{Name: f, Label: parking.Labels[f]})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSession(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionOf(c).Snapshot(true))
}

type calendarResponse struct {
	Changed  bool               `json:"changed"`
	Calendar calendar.MonthView `json:"calendar"`
	Selected []calendar.Day     `json:"selected"`
}

func (s *Server) calendarState(c echo.Context, changed bool) error {
	snap := sessionOf(c).Snapshot(false)
	return c.JSON(http.StatusOK, calendarResponse{
		Changed:  changed,
		Calendar: snap.Calendar,
		Selected: snap.Selected,
	})
}

func (s *Server) handleNavigate(c echo.Context) error {
	var req struct {
		Direction string `json:"direction" form:"direction" validate:"required,oneof=previous prev next"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidDirection)
	}
	dir, err := calendar.ParseDirection(req.Direction)
	if err != nil {
		return s.fail(c, err)
	}
	sessionOf(c).Navigate(dir)
	return s.calendarState(c, true)
}

// handleToggle flips a day of the displayed month. changed is false for days
// inside the lead time.
func (s *Server) handleToggle(c echo.Context) error {
	var req struct {
		Day int `json:"day" form:"day" validate:"min=1,max=31"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidDay)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidDay)
	}

	changed, err := sessionOf(c).Toggle(req.Day)
	if err != nil {
		return s.fail(c, err)
	}
	return s.calendarState(c, changed)
}

type fieldUpdate struct {
	Field string `json:"field" form:"field" validate:"required"`
	Value string `json:"value" form:"value"`
}

// handleUpdateField stores one field of the draft as the resident types it
func (s *Server) handleUpdateField(c echo.Context) error {
	var req fieldUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}

	st := sessionOf(c)
	if err := st.SetField(parking.Field(req.Field), req.Value); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, st.Snapshot(false).Draft)
}

type applicationsResponse struct {
	Applications []parking.Application `json:"applications"`
	Rows         []parking.Row         `json:"rows"`
}

func (s *Server) handleListApplications(c echo.Context) error {
	snap := sessionOf(c).Snapshot(false)
	return c.JSON(http.StatusOK, applicationsResponse{Applications: snap.Applications, Rows: snap.Rows})
}

type submitResponse struct {
	Application *parking.Application `json:"application,omitempty"`
	Notice      parking.Notice       `json:"notice"`
	Message     string               `json:"message,omitempty"`
}

// handleCreateApplication submits the JSON draft with the selected dates:
// 201 with the application, 422 with the error notice.
func (s *Server) handleCreateApplication(c echo.Context) error {
	var draft parking.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidBody)
	}

	st := sessionOf(c)
	notice, app, err := st.SubmitForm(c.Request().Context(), draft)
	st.DismissNotice()
	if err != nil {
		if !isValidation(err) {
			return s.fail(c, err)
		}
		info := s.errors.Map(err)
		return c.JSON(info.Status, submitResponse{Notice: notice, Message: info.Message})
	}
	return c.JSON(http.StatusCreated, submitResponse{Application: app, Notice: notice})
}

func isValidation(err error) bool {
	return errors.Is(err, parking.ErrNoDateSelected) ||
		errors.Is(err, parking.ErrUnitOutOfRange) ||
		errors.Is(err, parking.ErrMissingField) ||
		errors.Is(err, parking.ErrInvalidField)
}

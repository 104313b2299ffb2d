package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleAdmin renders the management board with every application of the process
func (s *Server) handleAdmin(c echo.Context) error {
	boards := 0
	if s.board != nil {
		boards = s.board.Len()
	}
	return c.Render(http.StatusOK, "admin.html", newAdminPage(s.ledger.All(), boards))
}

// handleExport handles export downloads in CSV, ICS or JSON format
// Query param: format (optional, defaults to csv)
func (s *Server) handleExport(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = FormatCSV
	}

	var contentType string
	var write func(*echo.Response) error
	apps := s.ledger.All()
	switch format {
	case FormatCSV:
		contentType = "text/csv; charset=utf-8"
		write = func(w *echo.Response) error { return WriteCSV(w, apps) }
	case FormatICS:
		contentType = "text/calendar; charset=utf-8"
		write = func(w *echo.Response) error { return WriteICS(w, apps) }
	case FormatJSON:
		contentType = echo.MIMEApplicationJSON
		write = func(w *echo.Response) error { return WriteJSON(w, apps) }
	default:
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidFormat)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", ExportFilename(format, s.clock.Now())))
	res.WriteHeader(http.StatusOK)
	if err := write(res); err != nil {
		slog.Error("export failed", slog.String("format", format), slog.Any("error", err))
	}
	slog.Info("applications exported", slog.String("format", format), slog.Int("count", len(apps)))
	return nil
}

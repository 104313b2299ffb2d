package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// LogPublisher stands in for the spreadsheet integration: it logs the row that
// would be appended to the sheet.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, app parking.Application) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dates := make([]string, 0, len(app.Dates))
	for _, d := range app.Dates {
		dates = append(dates, d.String())
	}

	logger.Info("application forwarded to spreadsheet",
		slog.String("applicationId", app.ID),
		slog.String("dates", strings.Join(dates, ",")),
		slog.String("unitNumber", app.UnitNumber),
		slog.String("licensePlate", app.LicensePlate),
		slog.String("name", app.Name),
		slog.Time("submittedAt", app.SubmittedAt),
	)
	return nil
}

package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// Export formats of the management download
const (
	FormatCSV  = "csv"
	FormatICS  = "ics"
	FormatJSON = "json"
)

var csvHeader = []string{"Dato", "Navn", "Enhet", "Registreringsnummer", "Grunn", "Telefon", "E-post", "Innsendt"}

// WriteCSV writes one line per application date, like the rows the management sheet would get
func WriteCSV(w io.Writer, apps []parking.Application) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, app := range apps {
		for _, d := range app.Dates {
			record := []string{
				d.String(),
				app.Name,
				app.UnitNumber,
				app.LicensePlate,
				app.Reason,
				app.Phone,
				app.Email,
				app.SubmittedAt.Format(time.RFC3339),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the applications as a JSON document
func WriteJSON(w io.Writer, apps []parking.Application) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"count":        len(apps),
		"applications": apps,
	})
}

// icsEscape escapes TEXT values (RFC 5545 3.3.11)
var icsEscape = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

// WriteICS writes one all-day event per application date. UIDs are stable so
// calendar clients update instead of duplicating on re-import.
func WriteICS(w io.Writer, apps []parking.Application) error {
	var b strings.Builder
	line := func(format string, args ...any) {
		foldICS(&b, fmt.Sprintf(format, args...))
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", ICSProductID)
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	line("X-WR-CALNAME:Midlertidig parkering")

	for _, app := range apps {
		for _, d := range app.Dates {
			start := d.Time(time.UTC)
			line("BEGIN:VEVENT")
			line("UID:%s-%s@%s", app.ID, d.String(), ICSDomain)
			line("DTSTAMP:%s", app.SubmittedAt.UTC().Format("20060102T150405Z"))
			line("DTSTART;VALUE=DATE:%s", start.Format("20060102"))
			line("DTEND;VALUE=DATE:%s", start.AddDate(0, 0, 1).Format("20060102"))
			line("SUMMARY:%s", icsEscape.Replace(fmt.Sprintf("Parkering %s (leil. %s)", app.LicensePlate, app.UnitNumber)))
			line("DESCRIPTION:%s", icsEscape.Replace(fmt.Sprintf("%s, tlf. %s: %s", app.Name, app.Phone, app.Reason)))
			line("END:VEVENT")
		}
	}

	line("END:VCALENDAR")
	_, err := io.WriteString(w, b.String())
	return err
}

// icsLineOctets is the content line limit of RFC 5545 3.1, CRLF excluded
const icsLineOctets = 75

// foldICS writes one content line, folded with CRLF and a space so that no
// physical line exceeds icsLineOctets. Multi-octet UTF-8 sequences are never
// split.
func foldICS(b *strings.Builder, content string) {
	limit := icsLineOctets
	for len(content) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		b.WriteString(content[:cut])
		b.WriteString("\r\n ")
		content = content[cut:]
		// the leading space counts towards the limit
		limit = icsLineOctets - 1
	}
	b.WriteString(content)
	b.WriteString("\r\n")
}

// ExportFilename is the download name for format
func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("parkering_%s.%s", now.Format("2006-01-02"), format)
}

package app

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Renderer executes the embedded page templates for echo
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"local": func(d calendar.Day) string { return d.Local() },
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// formField is one input of the resident form
type formField struct {
	Name      string
	Label     string
	Value     string
	Type      string
	Multiline bool
}

type indexPage struct {
	session.Snapshot
	Fields      []formField
	MinUnit     int
	MaxUnit     int
	LeadTime    int
	NoticeClass string
}

func newIndexPage(snap session.Snapshot) indexPage {
	page := indexPage{
		Snapshot: snap,
		MinUnit:  parking.MinUnitNumber,
		MaxUnit:  parking.MaxUnitNumber,
		LeadTime: calendar.LeadTimeDays,
	}
	for _, f := range parking.Fields {
		field := formField{
			Name:  string(f),
			Label: parking.Labels[f],
			Value: snap.Draft.Get(f),
			Type:  "text",
		}
		switch f {
		case parking.FieldReason:
			field.Multiline = true
		case parking.FieldUnitNumber:
			field.Type = "number"
		case parking.FieldPhone:
			field.Type = "tel"
		case parking.FieldEmail:
			field.Type = "email"
		}
		page.Fields = append(page.Fields, field)
	}
	if snap.Notice != nil {
		page.NoticeClass = "notice-" + string(snap.Notice.Level)
	}
	return page
}

type adminPage struct {
	Applications []parking.Application
	Days         int
	Boards       int
}

func newAdminPage(apps []parking.Application, boards int) adminPage {
	page := adminPage{Applications: apps, Boards: boards}
	for _, app := range apps {
		page.Days += len(app.Dates)
	}
	return page
}

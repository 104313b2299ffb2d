package app

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/session"
)

// ApplicationSource lists every application of the process (the notify ledger)
type ApplicationSource interface {
	All() []parking.Application
}

// Board is the live management feed (the notify hub)
type Board interface {
	http.Handler
	Len() int
}

// requestValidator runs the struct tags of bound request bodies
type requestValidator struct {
	v *validator.Validate
}

func (r *requestValidator) Validate(i interface{}) error {
	return r.v.Struct(i)
}

// Server holds the dependencies of the HTTP handlers
type Server struct {
	cfg      Config
	clock    calendar.Clock
	sessions *session.Manager
	ledger   ApplicationSource
	board    Board
	auth     *Auth
	errors   *ErrorMapper
}

// NewServer wires the handlers. board may be nil, which disables /admin/ws.
func NewServer(cfg Config, clock calendar.Clock, sessions *session.Manager, ledger ApplicationSource, board Board, auth *Auth) *Server {
	if auth == nil {
		auth = &Auth{}
	}
	return &Server{
		cfg:      cfg,
		clock:    clock,
		sessions: sessions,
		ledger:   ledger,
		board:    board,
		auth:     auth,
		errors:   DomainErrors,
	}
}

// Echo builds the echo instance with all routes
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(log.Writer())
	e.Renderer = NewRenderer()
	e.Validator = &requestValidator{v: parking.Validator()}
	e.Use(requestLogger)

	// Resident pages and API, no authentication
	resident := e.Group("", s.sessionMiddleware)
	resident.GET("/", s.handleIndex)
	resident.POST("/calendar/navigate", s.handleNavigateForm)
	resident.POST("/calendar/toggle", s.handleToggleForm)
	resident.POST("/submit", s.handleSubmitForm)

	api := resident.Group("/api")
	api.GET("/config", s.handleConfig)
	api.GET("/session", s.handleSession)
	api.POST("/calendar/navigate", s.handleNavigate)
	api.POST("/calendar/toggle", s.handleToggle)
	api.PATCH("/draft", s.handleUpdateField)
	api.GET("/applications", s.handleListApplications)
	api.POST("/applications", s.handleCreateApplication)

	// Management, protected with Basic Auth
	admin := e.Group("/admin", s.auth.Middleware())
	admin.GET("", s.handleAdmin)
	admin.GET("/export", s.handleExport)
	if s.board != nil {
		admin.GET("/ws", echo.WrapHandler(s.board))
	}

	return e
}

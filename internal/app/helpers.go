package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/session"
)

const sessionKey = "session"

// sessionMiddleware resolves the session cookie to a State. The cookie is
// reissued on every request so its lifetime follows the idle timeout.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var id string
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			id = cookie.Value
		}

		st, _ := s.sessions.Resolve(id)
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    st.ID,
			Path:     "/",
			MaxAge:   int(s.cfg.SessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(sessionKey, st)
		return next(c)
	}
}

// sessionOf returns the State set by sessionMiddleware
func sessionOf(c echo.Context) *session.State {
	st, _ := c.Get(sessionKey).(*session.State)
	return st
}

// fail answers err with the mapped status
func (s *Server) fail(c echo.Context, err error) error {
	info := s.errors.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return echo.NewHTTPError(info.Status, info.Message)
}

// backToIndex is the post/redirect/get answer of the HTML form routes
func backToIndex(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		level := slog.LevelDebug
		if c.Response().Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(req.Context(), level, "http request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", c.Response().Status),
			slog.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

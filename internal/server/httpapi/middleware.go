package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/server/auth"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
)

type ctxKey string

const sessionKey ctxKey = "session"

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// withSession resolves the visitor's session from the session cookie,
// falling back to the remember-me token when the session is gone. A
// visitor with neither stays anonymous; handlers decide whether that is
// acceptable.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := s.resolveSession(w, r)
		if session != nil {
			ctx := context.WithValue(r.Context(), sessionKey, session)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) *models.Session {
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		if session, err := s.sessions.Get(c.Value); err == nil {
			return session
		}
	}

	// session gone, try the remember-me token
	c, err := r.Cookie(common.RememberCookieName)
	if err != nil {
		return nil
	}

	accountID, err := auth.GetAccountIDFromToken(c.Value, s.jwtSecret)
	if err != nil {
		if auth.IsExpired(err) {
			s.logger.Info(r.Context(), "remember token expired")
		} else {
			s.logger.Warn(r.Context(), "remember token rejected", "error", err)
		}
		s.clearCookie(w, common.RememberCookieName)
		return nil
	}

	session, err := s.sessions.Restore(r.Context(), accountID)
	if err != nil || session == nil {
		// dangling account id, drop the stale token
		s.clearCookie(w, common.RememberCookieName)
		return nil
	}

	s.chat.Welcome(session)
	s.setSessionCookie(w, session.ID)
	return session
}

// sessionFrom returns the resolved session for the request, or nil for
// anonymous visitors.
func sessionFrom(r *http.Request) *models.Session {
	session, _ := r.Context().Value(sessionKey).(*models.Session)
	return session
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) setRememberCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RememberCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.rememberValidity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

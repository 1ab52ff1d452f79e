package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/server/auth"
	"github.com/dmitrijs2005/chatmate/internal/server/gateway"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/dmitrijs2005/chatmate/internal/server/persona"
	"github.com/dmitrijs2005/chatmate/internal/server/services"
)

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Gender          string `json:"gender"`
	AssistantName   string `json:"chatbot_name"`
	AssistantGender string `json:"chatbot_gender"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type chatRequest struct {
	Content string `json:"content"`
}

type settingsRequest struct {
	Model           string   `json:"model,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	Style           string   `json:"style,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	AssistantName   string   `json:"chatbot_name,omitempty"`
	AssistantGender string   `json:"chatbot_gender,omitempty"`
}

type sessionResponse struct {
	Authenticated   bool                   `json:"authenticated"`
	Username        string                 `json:"username,omitempty"`
	Gender          string                 `json:"gender,omitempty"`
	AssistantName   string                 `json:"chatbot_name,omitempty"`
	AssistantGender string                 `json:"chatbot_gender,omitempty"`
	Model           string                 `json:"model,omitempty"`
	Temperature     float64                `json:"temperature,omitempty"`
	Style           string                 `json:"style,omitempty"`
	Transcript      []models.Message       `json:"transcript,omitempty"`
	Stats           models.TranscriptStats `json:"stats"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// errorStatus maps service sentinels to HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUsernameTaken), errors.Is(err, common.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}
	return nil
}

func sessionPayload(session *models.Session) sessionResponse {
	p := session.Persona()
	settings := session.Settings()
	return sessionResponse{
		Authenticated:   true,
		Username:        session.UserName,
		Gender:          p.Gender,
		AssistantName:   p.AssistantName,
		AssistantGender: p.AssistantGender,
		Model:           settings.Model,
		Temperature:     settings.Temperature,
		Style:           settings.Style,
		Transcript:      session.Transcript.Messages(),
		Stats:           session.Transcript.Stats(),
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.accounts.Register(r.Context(), services.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Gender:          req.Gender,
		AssistantName:   req.AssistantName,
		AssistantGender: req.AssistantGender,
		TermsAccepted:   req.TermsAccepted,
	})
	if err != nil {
		status := errorStatus(err)
		body := map[string]string{"error": userMessage(err)}
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			body["field"] = "username"
		case errors.Is(err, common.ErrEmailTaken):
			body["field"] = "email"
		}
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"username": user.UserName})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, errorStatus(err), userMessage(err))
		return
	}

	session := s.sessions.Create(user, req.Remember)
	s.chat.Welcome(session)
	s.setSessionCookie(w, session.ID)

	if req.Remember {
		token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.rememberValidity)
		if err != nil {
			s.logger.Error(r.Context(), "failed to issue remember token", "error", err)
		} else {
			s.setRememberCookie(w, token)
		}
	}

	writeJSON(w, http.StatusOK, sessionPayload(session))
}

// handleLogout ends the session but keeps the remember-me token, so the
// next visit logs back in automatically.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if session := sessionFrom(r); session != nil {
		s.sessions.Destroy(session.ID)
	}
	s.clearCookie(w, common.SessionCookieName)
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

// handleForget ends the session and drops the remember-me token too.
func (s *Server) handleForget(w http.ResponseWriter, r *http.Request) {
	if session := sessionFrom(r); session != nil {
		s.sessions.Destroy(session.ID)
	}
	s.clearCookie(w, common.SessionCookieName)
	s.clearCookie(w, common.RememberCookieName)
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	if !session.Authenticated() {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	// persona may have been changed from another device; re-read it from
	// the account so the session reflects the stored values
	if p, err := s.accounts.PersonaFields(r.Context(), session.UserName); err == nil {
		session.SetPersona(p.Gender, p.AssistantName, p.AssistantGender)
	} else {
		s.logger.Warn(r.Context(), "persona refresh failed", "username", session.UserName, "error", err)
	}

	writeJSON(w, http.StatusOK, sessionPayload(session))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	if !session.Authenticated() {
		writeError(w, http.StatusUnauthorized, "please log in first")
		return
	}

	var req chatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := s.chat.Send(r.Context(), session, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrGateway) {
			// the fallback reply was appended; hand it to the client
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":   "completion failed",
				"message": msg,
			})
			return
		}
		writeError(w, errorStatus(err), userMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "stats": session.Transcript.Stats()})
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	if !session.Authenticated() {
		writeError(w, http.StatusUnauthorized, "please log in first")
		return
	}

	s.chat.Reset(session)
	welcome := s.chat.Welcome(session)
	writeJSON(w, http.StatusOK, map[string]any{"message": welcome, "stats": session.Transcript.Stats()})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"models":  gateway.Models(),
		"default": gateway.DefaultModel,
	})
}

func (s *Server) handleStarters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"starters": persona.Starters()})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	if !session.Authenticated() {
		writeError(w, http.StatusUnauthorized, "please log in first")
		return
	}

	var req settingsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Model != "" {
		if !gateway.ValidModel(req.Model) {
			writeError(w, http.StatusBadRequest, "unknown model")
			return
		}
		session.SetModel(req.Model)
	}
	if req.Temperature != nil {
		session.SetTemperature(gateway.ClampTemperature(*req.Temperature))
	}
	if req.Style != "" {
		if !persona.ValidStyle(req.Style) {
			writeError(w, http.StatusBadRequest, "unknown conversation style")
			return
		}
		session.SetStyle(req.Style)
	}

	// persona changes are persisted on the account, not just the session
	if req.AssistantName != "" || req.AssistantGender != "" || req.Gender != "" {
		current := session.Persona()
		gender := orDefault(req.Gender, current.Gender)
		name := orDefault(req.AssistantName, current.AssistantName)
		assistantGender := orDefault(req.AssistantGender, current.AssistantGender)

		if err := s.accounts.UpdatePersona(r.Context(), session.UserName, gender, name, assistantGender); err != nil {
			writeError(w, errorStatus(err), userMessage(err))
			return
		}
		session.SetPersona(gender, name, assistantGender)
	}

	writeJSON(w, http.StatusOK, sessionPayload(session))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// userMessage strips the sentinel prefix so the browser shows only the
// human-readable part.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{common.ErrValidation, common.ErrGateway} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
		}
	}
	return err.Error()
}

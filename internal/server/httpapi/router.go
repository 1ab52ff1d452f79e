package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.withLogging, s.withSession)

	api.HandleFunc("/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/logout", s.handleLogout).Methods("POST")
	api.HandleFunc("/forget", s.handleForget).Methods("POST")
	api.HandleFunc("/session", s.handleSession).Methods("GET")
	api.HandleFunc("/chat", s.handleChat).Methods("POST")
	api.HandleFunc("/chat/reset", s.handleChatReset).Methods("POST")
	api.HandleFunc("/models", s.handleModels).Methods("GET")
	api.HandleFunc("/starters", s.handleStarters).Methods("GET")
	api.HandleFunc("/settings", s.handleSettings).Methods("PUT")

	return r
}

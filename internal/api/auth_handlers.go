package api

import (
	"net/http"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

// handleRegister creates a new account and returns a token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates a user and returns a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleLogout ends the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.authService.Logout(r.Context(), getUserID(r.Context()))
	response.NoContent(w)
}

// handleVerify returns the authenticated user, confirming the token works.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())
	user, err := s.store.Users.Find(r.Context(), func(u *domain.User) bool {
		return u.ID == userID
	})
	if err != nil {
		response.Unauthorized(w, "User no longer exists", s.logger)
		return
	}

	response.Success(w, user.Public(), s.logger)
}

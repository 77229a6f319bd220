package httpapi

import (
	"log"
	"net/http"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Message       string `json:"message"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token"`
	ExpiresAt     int64  `json:"expires_at"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ok, err := s.Credentials.Verify(r.Context(), req.Password)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if !ok {
		log.Printf("admin login rejected [%s]", RequestID(r))
		WriteError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	token, exp, err := s.Tokens.Issue()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, LoginResponse{
		Message:       "Login successful",
		Authenticated: true,
		Token:         token,
		ExpiresAt:     exp,
	})
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.Credentials.Rotate(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		writeFailure(w, r, err)
		return
	}
	log.Printf("admin password changed [%s]", RequestID(r))
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

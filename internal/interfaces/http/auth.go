package http

import (
	"net/http"

	"nestfin/internal/domain/user"
)

type AuthHandler struct {
	users *user.Service
}

func NewAuthHandler(users *user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func newAuthResponse(res *user.AuthResult) AuthResponse {
	return AuthResponse{
		Token:  res.Token,
		UserID: res.User.ID,
		Name:   res.User.Name,
		Email:  res.User.Email,
	}
}

// HandleRegister creates an account and signs the caller in
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.users.Register(r.Context(), user.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

// HandleLogin exchanges credentials for a bearer token
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"authd/internal/common"
	"authd/internal/server/services"
	"authd/internal/server/validation"
)

// Client-facing reason strings. Internal error detail stays in the server
// log and is never sent to the caller.
const (
	reasonBadBody       = "Wrong profile data"
	reasonConflict      = "User with this login, email or phone already exists"
	reasonUnauthorized  = "User with this login and password not found"
	reasonInvalidToken  = "Invalid or expired token"
	reasonInternalError = "Internal error"
)

// validationReasons maps each validation sentinel to the reason string
// reported to the client. Callers must be able to see which field failed.
var validationReasons = map[error]string{
	validation.ErrInvalidLogin: "Invalid login format",
	validation.ErrInvalidEmail: "Invalid email format",
	validation.ErrWeakPassword: "Password must be 6-100 characters long and contain an uppercase letter, a lowercase letter and a digit",
	validation.ErrInvalidPhone: "Invalid phone format",
	validation.ErrInvalidImage: "Image reference is too long",
}

// --------- DTOs ---------

type registerRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsPublic bool   `json:"isPublic"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
}

type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type profileDTO struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	IsPublic bool   `json:"isPublic"`
	Phone    string `json:"phone,omitempty"`
	Image    string `json:"image,omitempty"`
}

// --------- JSON helpers ---------

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"reason": reason})
}

// --------- Handlers ---------

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, reasonBadBody)
		return
	}

	profile, err := s.auth.Register(r.Context(), services.RegisterRequest{
		Login:    in.Login,
		Email:    in.Email,
		Password: in.Password,
		IsPublic: in.IsPublic,
		Phone:    in.Phone,
		Image:    in.Image,
	})

	if err != nil {
		if reason, ok := validationReasons[err]; ok {
			errorJSON(w, http.StatusBadRequest, reason)
			return
		}
		if errors.Is(err, common.ErrorAlreadyExists) {
			errorJSON(w, http.StatusConflict, reasonConflict)
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		errorJSON(w, http.StatusInternalServerError, reasonInternalError)
		return
	}

	s.logger.Info(r.Context(), "registered", "login", profile.Login)
	writeJSON(w, http.StatusCreated, map[string]profileDTO{"profile": {
		Login:    profile.Login,
		Email:    profile.Email,
		IsPublic: profile.IsPublic,
		Phone:    profile.Phone,
		Image:    profile.Image,
	}})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, reasonBadBody)
		return
	}

	token, err := s.auth.SignIn(r.Context(), in.Login, in.Password)

	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			errorJSON(w, http.StatusUnauthorized, reasonUnauthorized)
			return
		}
		s.logger.Error(r.Context(), "sign-in failed", "error", err.Error())
		errorJSON(w, http.StatusInternalServerError, reasonInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		errorJSON(w, http.StatusUnauthorized, reasonInvalidToken)
		return
	}

	claims, err := s.auth.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
			errorJSON(w, http.StatusUnauthorized, reasonInvalidToken)
			return
		}
		s.logger.Error(r.Context(), "sign-out failed", "error", err.Error())
		errorJSON(w, http.StatusInternalServerError, reasonInternalError)
		return
	}

	if err := s.auth.InvalidateSessions(r.Context(), claims.Login); err != nil {
		s.logger.Error(r.Context(), "sign-out failed", "error", err.Error())
		errorJSON(w, http.StatusInternalServerError, reasonInternalError)
		return
	}

	s.logger.Info(r.Context(), "signed out everywhere", "login", claims.Login)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, prefix))
	return token, token != ""
}

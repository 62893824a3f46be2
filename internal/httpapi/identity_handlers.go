package httpapi

import (
	"errors"
	"net/http"
	"time"

	"providerhub.org/internal/identity"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	token, err := a.identity.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		handleIdentityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	token, err := a.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleIdentityError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

func handleIdentityError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *identity.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, r, verr.Fields)
	case errors.Is(err, identity.ErrEmailTaken):
		writeValidationError(w, r, map[string][]string{
			"email": {"email is already taken"},
		})
	case errors.Is(err, identity.ErrLockedOut):
		writeError(w, r, http.StatusBadRequest, "account is locked out, try again later")
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeError(w, r, http.StatusBadRequest, "invalid email or password")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

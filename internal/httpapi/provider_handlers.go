package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"providerhub.org/internal/identity"
	"providerhub.org/internal/provider"
)

// providerRequest accepts the full object shape returned by GET so a client
// can fetch, modify and send the record back. Identity and timestamps are
// ignored; the service assigns or preserves them.
type providerRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (req providerRequest) toModel() provider.Provider {
	return provider.Provider{
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
	}
}

func (a *API) handleProviderCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listProviders(w, r)
	case http.MethodPost:
		a.createProvider(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleProviderResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/provider/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getProvider(w, r, id)
	case http.MethodPut:
		a.replaceProvider(w, r, id)
	case http.MethodDelete:
		a.deleteProvider(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listProviders(w http.ResponseWriter, r *http.Request) {
	items, err := a.providers.List(r.Context())
	if err != nil {
		handleProviderError(w, r, err)
		return
	}
	if items == nil {
		items = []provider.Provider{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getProvider(w http.ResponseWriter, r *http.Request, id string) {
	p, err := a.providers.Get(r.Context(), id)
	if err != nil {
		handleProviderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) createProvider(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireUser(w, r); !ok {
		return
	}
	var req providerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	p, err := a.providers.Create(r.Context(), req.toModel())
	if err != nil {
		handleProviderError(w, r, err)
		return
	}
	w.Header().Set("Location", "/provider/"+p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) replaceProvider(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireUser(w, r); !ok {
		return
	}
	var req providerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := a.providers.Replace(r.Context(), id, req.toModel()); err != nil {
		handleProviderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteProvider(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireClaim(w, r, identity.ClaimDeleteProvider); !ok {
		return
	}
	if err := a.providers.Delete(r.Context(), id); err != nil {
		handleProviderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleProviderError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *provider.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, r, verr.Fields)
	case errors.Is(err, provider.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "provider not found")
	case errors.Is(err, provider.ErrNotSaved):
		writeError(w, r, http.StatusBadRequest, "the provider could not be saved")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

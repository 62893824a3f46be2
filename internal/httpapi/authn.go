package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"providerhub.org/internal/identity"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

type claimsContextKey struct{}

// ContextWithClaims attaches verified token claims to the context.
func ContextWithClaims(ctx context.Context, claims *identity.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts the authenticated token claims from the context.
func ClaimsFromContext(ctx context.Context) (*identity.TokenClaims, bool) {
	v, ok := ctx.Value(claimsContextKey{}).(*identity.TokenClaims)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// requireUser authenticates the bearer token and returns the embedded claims.
// Writes a 401 response and returns false on failure.
func (a *API) requireUser(w http.ResponseWriter, r *http.Request) (*identity.TokenClaims, bool) {
	token, err := extractBearerToken(r.Header.Get(authHeader))
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	claims, err := a.identity.Authenticate(token)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "invalid token")
		return nil, false
	}
	return claims, true
}

// requireClaim authenticates the caller and additionally demands a named
// grant. An authenticated caller without the claim gets 403.
func (a *API) requireClaim(w http.ResponseWriter, r *http.Request, claim string) (*identity.TokenClaims, bool) {
	claims, ok := a.requireUser(w, r)
	if !ok {
		return nil, false
	}
	if !claims.HasClaim(claim) {
		writeError(w, r, http.StatusForbidden, "missing required claim")
		return nil, false
	}
	return claims, true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

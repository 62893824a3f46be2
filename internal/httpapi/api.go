package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"providerhub.org/api/spec"
	"providerhub.org/internal/identity"
	"providerhub.org/internal/obs"
	"providerhub.org/internal/provider"
)

// ReadyProbe checks service readiness (database ping when configured).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer: router, guards and handlers.
type API struct {
	mux        *http.ServeMux
	providers  *provider.Service
	identity   *identity.Service
	readyProbe ReadyProbe
	version    string
	docs       bool
	maxBody    int64
}

// Option configures API behavior.
type Option func(*API)

// WithDocs mounts the OpenAPI document and the interactive docs page. Only
// enabled outside production.
func WithDocs(enabled bool) Option {
	return func(a *API) { a.docs = enabled }
}

// WithMaxBodyBytes overrides the request body size limit.
func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

func New(rp ReadyProbe, version string, providers *provider.Service, ident *identity.Service, opts ...Option) *API {
	a := &API{
		mux:        http.NewServeMux(),
		providers:  providers,
		identity:   ident,
		readyProbe: rp,
		version:    version,
		maxBody:    1 << 20,
	}
	for _, opt := range opts {
		opt(a)
	}

	// provider resource
	a.mux.HandleFunc("/provider", a.handleProviderCollection)
	a.mux.HandleFunc("/provider/", a.handleProviderResource)

	// identity
	a.mux.HandleFunc("/register", a.handleRegister)
	a.mux.HandleFunc("/login", a.handleLogin)

	// health/ready
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	if a.docs {
		a.mux.HandleFunc("/openapi.yaml", a.OpenAPISpec)
		a.mux.HandleFunc("/docs", a.Docs)
	}

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, a.maxBody)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "providerhub-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}

func (a *API) Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(spec.DocsPage)
}

// Package gateway is the HTTP adapter around the decision pipeline:
// secret map load, authentication, and credential issuance, with the
// fixed status-code contract. Failure bodies are constant strings;
// underlying causes go to the log and the audit trail only.
package gateway

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/fruitstand/dispenser/internal/audit"
	"github.com/fruitstand/dispenser/internal/auth"
	"github.com/fruitstand/dispenser/internal/issuer"
	"github.com/fruitstand/dispenser/internal/tenant"
)

const msgConfigError = "Internal Server Error: secret configuration missing or malformed"
const msgAssumeRoleFailed = "Internal Server Error: Could not assume role"

// SecretSource loads the tenant secret map for a request.
type SecretSource interface {
	SecretMap(ctx context.Context) (tenant.SecretMap, error)
}

// SecretSourceFunc adapts a function to the SecretSource interface.
type SecretSourceFunc func(ctx context.Context) (tenant.SecretMap, error)

// SecretMap implements SecretSource.
func (f SecretSourceFunc) SecretMap(ctx context.Context) (tenant.SecretMap, error) {
	return f(ctx)
}

// Issuer exchanges a normalized tenant name for temporary credentials.
type Issuer interface {
	Issue(ctx context.Context, normalizedTenant string) (*issuer.Credentials, error)
}

// Recorder persists issuance decisions. *audit.Store satisfies it.
type Recorder interface {
	Append(d audit.Decision) error
}

// Options configures a Server.
type Options struct {
	Secrets SecretSource
	Issuer  Issuer
	// Recorder is optional; nil disables the audit trail.
	Recorder Recorder
	// Authenticator defaults to auth.New() when nil.
	Authenticator *auth.Authenticator
}

// Server is the gateway's HTTP server.
type Server struct {
	addr     string
	secrets  SecretSource
	auth     *auth.Authenticator
	issuer   Issuer
	recorder Recorder

	server   *http.Server
	listener net.Listener
}

// NewServer creates a gateway server that will listen on addr.
func NewServer(addr string, opts Options) *Server {
	a := opts.Authenticator
	if a == nil {
		a = auth.New()
	}

	s := &Server{
		addr:     addr,
		secrets:  opts.Secrets,
		auth:     a,
		issuer:   opts.Issuer,
		recorder: opts.Recorder,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /credentials/", s.handleCredentials)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler (for testing).
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	go func() { _ = s.server.Serve(listener) }()
	return nil
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

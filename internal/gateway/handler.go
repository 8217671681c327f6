package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fruitstand/dispenser/internal/audit"
	"github.com/fruitstand/dispenser/internal/log"
)

// handleCredentials runs the issuance pipeline for GET /credentials/{fruit}.
// Stage order is fixed: configuration, authentication, issuance. Each
// stage short-circuits to a terminal response.
func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	fruit := extractTenant(r.URL.Path)

	secretMap, err := s.secrets.SecretMap(r.Context())
	if err != nil {
		log.Error("secret configuration unavailable", "error", err)
		s.record(fruit, "config_error", http.StatusInternalServerError)
		http.Error(w, msgConfigError, http.StatusInternalServerError)
		return
	}

	name, denial := s.auth.Authorize(secretMap, r.Header.Get("Authorization"), fruit)
	if denial != nil {
		log.Warn("request denied", "reason", denial.Reason(), "tenant", fruit)
		s.record(fruit, denial.Reason(), denial.Status())
		http.Error(w, denial.Message(), denial.Status())
		return
	}

	creds, err := s.issuer.Issue(r.Context(), name)
	if err != nil {
		// Full cause stays server-side; the body is a fixed message.
		log.Error("role assumption failed", "tenant", name, "error", err)
		s.record(name, "assume_role_failed", http.StatusInternalServerError)
		http.Error(w, msgAssumeRoleFailed, http.StatusInternalServerError)
		return
	}

	log.Info("credentials issued", "tenant", name)
	s.record(name, "issued", http.StatusOK)
	writeJSON(w, http.StatusOK, creds)
}

// handleHealth responds to load-balancer probes. No secret material.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// record appends a decision to the audit trail, if one is configured.
func (s *Server) record(tenantName, outcome string, status int) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.Append(audit.Decision{
		Tenant:  tenantName,
		Outcome: outcome,
		Status:  status,
	})
	if err != nil {
		log.Warn("audit append failed", "error", err)
	}
}

// extractTenant extracts the tenant identifier from a request path by
// stripping the route prefix.
func extractTenant(path string) string {
	fruit := strings.TrimPrefix(path, "/credentials/")
	// Remove any trailing slash.
	fruit = strings.TrimSuffix(fruit, "/")
	return fruit
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

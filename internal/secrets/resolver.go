// Package secrets loads the tenant secret map from pluggable backends.
// A reference URI selects the backend by scheme: env://VAR reads a JSON
// object from an environment variable, file://path reads it from disk,
// and awssm://[region/]name fetches it from AWS Secrets Manager. The
// resolved map is loaded once per process and treated as immutable.
package secrets

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Resolver resolves a secret-map reference to its tenant->secret entries.
type Resolver interface {
	// Scheme returns the URI scheme this resolver handles (e.g., "env", "awssm").
	Scheme() string

	// Resolve fetches and decodes the secret map for the given reference.
	// The reference is the full URI (e.g., "env://STUDENT_PASSWORDS_JSON").
	Resolve(ctx context.Context, reference string) (map[string]string, error)
}

var (
	resolvers = make(map[string]Resolver)
	mu        sync.RWMutex
)

// Register adds a resolver to the registry.
func Register(r Resolver) {
	mu.Lock()
	defer mu.Unlock()
	resolvers[r.Scheme()] = r
}

// Resolve dispatches to the appropriate resolver based on URI scheme.
func Resolve(ctx context.Context, reference string) (map[string]string, error) {
	scheme := parseScheme(reference)
	if scheme == "" {
		return nil, &InvalidReferenceError{Reference: reference, Reason: "missing scheme"}
	}

	mu.RLock()
	r, ok := resolvers[scheme]
	mu.RUnlock()

	if !ok {
		return nil, &UnsupportedSchemeError{Scheme: scheme}
	}

	return r.Resolve(ctx, reference)
}

// parseScheme extracts the scheme from a URI (e.g., "env" from "env://VAR").
func parseScheme(ref string) string {
	idx := strings.Index(ref, "://")
	if idx < 1 {
		return ""
	}
	return ref[:idx]
}

// decodeMap parses a JSON object of tenant names to secrets.
func decodeMap(data []byte, reference string) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &InvalidPayloadError{Reference: reference, Cause: err}
	}
	if len(m) == 0 {
		return nil, &InvalidPayloadError{Reference: reference, Reason: "no tenants configured"}
	}
	return m, nil
}

// clearRegistry removes all registered resolvers. For testing only.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	resolvers = make(map[string]Resolver)
}

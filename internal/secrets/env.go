package secrets

import (
	"context"
	"os"
	"strings"
)

// EnvResolver resolves the secret map from a JSON-valued environment
// variable, e.g. env://STUDENT_PASSWORDS_JSON.
type EnvResolver struct{}

// Scheme returns "env".
func (r *EnvResolver) Scheme() string {
	return "env"
}

// Resolve reads and decodes the named environment variable.
func (r *EnvResolver) Resolve(ctx context.Context, reference string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(reference, "env://")
	if name == "" || name == reference {
		return nil, &InvalidReferenceError{
			Reference: reference,
			Reason:    "expected env://VARIABLE_NAME",
		}
	}

	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return nil, &BackendError{
			Backend:   "env",
			Reference: reference,
			Reason:    name + " is not set",
		}
	}

	return decodeMap([]byte(value), reference)
}

func init() {
	Register(&EnvResolver{})
}

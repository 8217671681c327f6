package secrets

import (
	"context"
	"os"
	"strings"
)

// FileResolver resolves the secret map from a JSON document on disk,
// e.g. file:///etc/dispenser/tenants.json.
type FileResolver struct{}

// Scheme returns "file".
func (r *FileResolver) Scheme() string {
	return "file"
}

// Resolve reads and decodes the referenced file.
func (r *FileResolver) Resolve(ctx context.Context, reference string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(reference, "file://")
	if path == "" || path == reference {
		return nil, &InvalidReferenceError{
			Reference: reference,
			Reason:    "expected file://path",
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &BackendError{
			Backend:   "file",
			Reference: reference,
			Reason:    "reading secret map",
			Cause:     err,
		}
	}

	return decodeMap(data, reference)
}

func init() {
	Register(&FileResolver{})
}

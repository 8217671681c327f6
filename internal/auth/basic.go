package auth

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// parseBasicAuth decodes an Authorization header value into a username
// and password. The header must be exactly two whitespace-separated
// tokens, the scheme must be Basic (case-insensitive), and the decoded
// payload must contain exactly one colon. A payload with zero or more
// than one colon is rejected rather than silently truncated, so
// passwords containing colons are not supported.
func parseBasicAuth(header string) (username, password string, denial *Denial) {
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return "", "", &Denial{Code: CodeMalformedHeader}
	}

	if !strings.EqualFold(fields[0], "Basic") {
		return "", "", &Denial{Code: CodeUnsupportedScheme}
	}

	raw, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil || !utf8.Valid(raw) {
		return "", "", &Denial{Code: CodeMalformedHeader}
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return "", "", &Denial{Code: CodeMalformedHeader}
	}

	return parts[0], parts[1], nil
}

// Package tenant defines the naming rules shared by authentication and
// role assumption. Every lookup and derived role name uses the same
// normalized tenant identifier, so the two stages can never drift apart.
package tenant

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Naming conventions for tenant-scoped IAM roles. Roles are provisioned
// out-of-band; this package only computes the expected names.
const (
	rolePrefix        = "StudentRole-"
	sessionNameSuffix = "WebAppSession"
)

// SecretMap maps a normalized tenant name to its configured secret.
// It is loaded once at startup and never mutated afterwards.
type SecretMap map[string]string

// Secret returns the secret configured for a normalized tenant name.
func (m SecretMap) Secret(name string) (string, bool) {
	s, ok := m[name]
	return s, ok
}

// Normalize title-cases the first rune of a tenant identifier and
// lowercases the remainder ("aPPle" -> "Apple"). It is idempotent and
// returns the empty string unchanged.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToTitle(first)) + strings.ToLower(name[size:])
}

// RoleName returns the IAM role name for a normalized tenant.
func RoleName(normalized string) string {
	return rolePrefix + normalized
}

// SessionName returns the role session name for a normalized tenant.
func SessionName(normalized string) string {
	return normalized + sessionNameSuffix
}

// RoleARN returns the fully qualified role ARN for a normalized tenant
// within the given account. Partition is usually "aws".
func RoleARN(partition, accountID, normalized string) string {
	return fmt.Sprintf("arn:%s:iam::%s:role/%s", partition, accountID, RoleName(normalized))
}

// Package auth implements the request validation pipeline: Basic
// Authorization header parsing, the fixed-identity check, and tenant
// secret verification. Checks run in a fixed order and short-circuit
// on the first failure; the order is part of the external contract and
// must not be changed.
package auth

import (
	"crypto/subtle"

	"github.com/fruitstand/dispenser/internal/tenant"
)

// DefaultUsername is the only identity the gateway accepts.
const DefaultUsername = "student"

// Authenticator validates parsed credentials against a tenant secret map.
type Authenticator struct {
	// Username is the fixed identity; compared case-sensitively.
	Username string
}

// New returns an Authenticator with the default fixed username.
func New() *Authenticator {
	return &Authenticator{Username: DefaultUsername}
}

// Authorize runs the validation pipeline and returns the normalized
// tenant name on success. The check order is fixed: header shape,
// scheme, base64/colon split, username, tenant presence, tenant known,
// password. The same normalized name is used for the secret lookup and
// for all role derivation downstream.
func (a *Authenticator) Authorize(secrets tenant.SecretMap, header, rawTenant string) (string, *Denial) {
	username, password, denial := parseBasicAuth(header)
	if denial != nil {
		return "", denial
	}

	if username != a.Username {
		return "", &Denial{Code: CodeInvalidUsername}
	}

	if rawTenant == "" {
		return "", &Denial{Code: CodeMissingTenant}
	}

	name := tenant.Normalize(rawTenant)

	secret, ok := secrets.Secret(name)
	if !ok {
		return "", &Denial{Code: CodeUnknownTenant, Tenant: rawTenant}
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(secret)) != 1 {
		return "", &Denial{Code: CodeInvalidSecret}
	}

	return name, nil
}

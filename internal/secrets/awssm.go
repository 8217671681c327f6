package secrets

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the narrow Secrets Manager surface used by the
// resolver (enables testing).
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerResolver resolves the secret map from an AWS Secrets
// Manager secret whose value is the JSON object of tenant secrets.
// Reference forms: awssm://region/name or awssm:///name (default region).
type SecretsManagerResolver struct {
	// client overrides the SDK client when set (for testing).
	client SecretsManagerAPI
}

// Scheme returns "awssm".
func (r *SecretsManagerResolver) Scheme() string {
	return "awssm"
}

// SetClient sets a custom Secrets Manager client (for testing).
func (r *SecretsManagerResolver) SetClient(client SecretsManagerAPI) {
	r.client = client
}

// Resolve fetches the secret value and decodes it as a tenant map.
func (r *SecretsManagerResolver) Resolve(ctx context.Context, reference string) (map[string]string, error) {
	region, name, err := parseSecretsManagerReference(reference)
	if err != nil {
		return nil, err
	}

	client := r.client
	if client == nil {
		var opts []func(*awsconfig.LoadOptions) error
		if region != "" {
			opts = append(opts, awsconfig.WithRegion(region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, &BackendError{
				Backend:   "AWS Secrets Manager",
				Reference: reference,
				Reason:    "loading AWS config",
				Cause:     err,
			}
		}
		client = secretsmanager.NewFromConfig(awsCfg)
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, &BackendError{
			Backend:   "AWS Secrets Manager",
			Reference: reference,
			Reason:    "fetching secret",
			Cause:     err,
		}
	}

	var data []byte
	switch {
	case out.SecretString != nil:
		data = []byte(aws.ToString(out.SecretString))
	case out.SecretBinary != nil:
		data = out.SecretBinary
	default:
		return nil, &BackendError{
			Backend:   "AWS Secrets Manager",
			Reference: reference,
			Reason:    "secret has no value",
		}
	}

	return decodeMap(data, reference)
}

// parseSecretsManagerReference extracts region and secret name from an
// awssm:// URI. The host is the region; the path is the secret name,
// which may itself contain slashes.
//
//	awssm://us-west-2/course/tenants -> ("us-west-2", "course/tenants")
//	awssm:///course/tenants         -> ("", "course/tenants")
func parseSecretsManagerReference(ref string) (region, name string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", &InvalidReferenceError{Reference: ref, Reason: "invalid URI"}
	}

	if u.Scheme != "awssm" {
		return "", "", &InvalidReferenceError{Reference: ref, Reason: "expected awssm:// scheme"}
	}

	name = strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", "", &InvalidReferenceError{Reference: ref, Reason: "secret name is required"}
	}

	return u.Host, name, nil
}

func init() {
	Register(&SecretsManagerResolver{})
}

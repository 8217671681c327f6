package issuer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentityAPI is the STS surface used to discover the
// deployment's own account (enables testing).
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// DiscoverAccountID returns the AWS account the process is running as.
// Called once at startup; the tenant role ARNs are qualified with it.
func DiscoverAccountID(ctx context.Context, client CallerIdentityAPI) (string, error) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("resolving caller identity: %w", err)
	}

	account := aws.ToString(out.Account)
	if account == "" {
		return "", fmt.Errorf("caller identity has no account ID")
	}
	return account, nil
}

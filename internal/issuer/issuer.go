// Package issuer exchanges a normalized tenant name for temporary AWS
// credentials by assuming the tenant's role via STS. It computes the
// expected role ARN from the naming convention and never checks role
// existence up front; a failed assumption is reported as-is to the
// caller's log hook while the HTTP layer stays generic.
package issuer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/fruitstand/dispenser/internal/tenant"
)

// DefaultPartition is used when the deployment does not override it.
const DefaultPartition = "aws"

// STSAssumeRoler is the narrow STS surface used by the issuer (enables testing).
type STSAssumeRoler interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Credentials holds the temporary credentials returned to the caller.
// Field names match the wire format.
type Credentials struct {
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
}

// Config holds the issuer's deployment identity and session settings.
type Config struct {
	// AccountID is the deployment's own AWS account, obtained from the
	// invocation context (GetCallerIdentity) or configured explicitly.
	AccountID string
	// Partition qualifies the role ARN; defaults to "aws".
	Partition string
	// SessionDuration is sent as DurationSeconds when positive;
	// zero lets STS apply its default.
	SessionDuration time.Duration
}

// Issuer assumes tenant roles and returns their temporary credentials.
type Issuer struct {
	client STSAssumeRoler
	cfg    Config
}

// New creates an Issuer using the given STS client.
func New(client STSAssumeRoler, cfg Config) *Issuer {
	if cfg.Partition == "" {
		cfg.Partition = DefaultPartition
	}
	return &Issuer{client: client, cfg: cfg}
}

// Issue assumes the role derived from the normalized tenant name and
// returns the three credential fields verbatim from the STS response.
func (i *Issuer) Issue(ctx context.Context, normalizedTenant string) (*Credentials, error) {
	roleARN := tenant.RoleARN(i.cfg.Partition, i.cfg.AccountID, normalizedTenant)

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(tenant.SessionName(normalizedTenant)),
	}
	if i.cfg.SessionDuration > 0 {
		input.DurationSeconds = aws.Int32(int32(i.cfg.SessionDuration.Seconds()))
	}

	out, err := i.client.AssumeRole(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("assuming role %s: %w", roleARN, err)
	}
	if out.Credentials == nil {
		return nil, fmt.Errorf("STS returned empty credentials for role %s", roleARN)
	}

	return &Credentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
	}, nil
}

// NewClient loads the default AWS config and returns an STS client.
func NewClient(ctx context.Context, region string) (*sts.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return sts.NewFromConfig(awsCfg), nil
}

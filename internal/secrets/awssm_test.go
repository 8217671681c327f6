package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// mockSecretsManager implements SecretsManagerAPI for testing.
type mockSecretsManager struct {
	getSecretValueFn func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *mockSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.getSecretValueFn(ctx, params, optFns...)
}

func TestParseSecretsManagerReference(t *testing.T) {
	tests := []struct {
		ref        string
		wantRegion string
		wantName   string
		wantErr    bool
	}{
		{ref: "awssm://us-west-2/course/tenants", wantRegion: "us-west-2", wantName: "course/tenants"},
		{ref: "awssm:///course/tenants", wantRegion: "", wantName: "course/tenants"},
		{ref: "awssm://eu-central-1/tenants", wantRegion: "eu-central-1", wantName: "tenants"},
		{ref: "awssm://us-east-1/", wantErr: true},
		{ref: "awssm://", wantErr: true},
		{ref: "ssm:///param", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			region, name, err := parseSecretsManagerReference(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSecretsManagerReference(%q) = (%q, %q), want error", tt.ref, region, name)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if region != tt.wantRegion || name != tt.wantName {
				t.Errorf("got (%q, %q), want (%q, %q)", region, name, tt.wantRegion, tt.wantName)
			}
		})
	}
}

func TestSecretsManagerResolver(t *testing.T) {
	t.Run("decodes secret string", func(t *testing.T) {
		r := &SecretsManagerResolver{}
		r.SetClient(&mockSecretsManager{
			getSecretValueFn: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
				if aws.ToString(params.SecretId) != "course/tenants" {
					t.Errorf("SecretId = %q, want course/tenants", aws.ToString(params.SecretId))
				}
				return &secretsmanager.GetSecretValueOutput{
					SecretString: aws.String(`{"Apple":"secret1"}`),
				}, nil
			},
		})

		m, err := r.Resolve(context.Background(), "awssm://us-east-1/course/tenants")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m["Apple"] != "secret1" {
			t.Errorf("map = %v", m)
		}
	})

	t.Run("decodes secret binary", func(t *testing.T) {
		r := &SecretsManagerResolver{}
		r.SetClient(&mockSecretsManager{
			getSecretValueFn: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
				return &secretsmanager.GetSecretValueOutput{
					SecretBinary: []byte(`{"Kiwi":"secret7"}`),
				}, nil
			},
		})

		m, err := r.Resolve(context.Background(), "awssm:///tenants")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m["Kiwi"] != "secret7" {
			t.Errorf("map = %v", m)
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		r := &SecretsManagerResolver{}
		r.SetClient(&mockSecretsManager{
			getSecretValueFn: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
				return nil, fmt.Errorf("ResourceNotFoundException")
			},
		})

		_, err := r.Resolve(context.Background(), "awssm:///tenants")
		var backend *BackendError
		if !errors.As(err, &backend) {
			t.Fatalf("error = %v, want BackendError", err)
		}
	})

	t.Run("secret with no value", func(t *testing.T) {
		r := &SecretsManagerResolver{}
		r.SetClient(&mockSecretsManager{
			getSecretValueFn: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
				return &secretsmanager.GetSecretValueOutput{}, nil
			},
		})

		if _, err := r.Resolve(context.Background(), "awssm:///tenants"); err == nil {
			t.Fatal("expected error for empty secret")
		}
	})
}

// writeFile writes contents to path, failing the test on error.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

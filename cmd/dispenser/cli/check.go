package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fruitstand/dispenser/internal/config"
	"github.com/fruitstand/dispenser/internal/issuer"
	"github.com/fruitstand/dispenser/internal/secrets"
	"github.com/fruitstand/dispenser/internal/tenant"
)

var checkCmd = &cobra.Command{
	Use:   "check <fruit>",
	Short: "Verify a tenant's provisioning",
	Long: `Verify that a tenant is fully provisioned: its secret is present in
the configured secret map and its role can be assumed with the
gateway's current AWS credentials. Issued test credentials are
discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	rawMap, err := secrets.Resolve(ctx, cfg.Secrets)
	if err != nil {
		return fmt.Errorf("loading tenant secrets: %w", err)
	}

	name := tenant.Normalize(args[0])
	if _, ok := tenant.SecretMap(rawMap).Secret(name); !ok {
		return fmt.Errorf("tenant %q has no secret in %s", name, cfg.Secrets)
	}
	fmt.Printf("Secret configured for %s\n", name)

	iss, accountID, err := buildIssuer(ctx, cfg)
	if err != nil {
		return err
	}

	if _, err := iss.Issue(ctx, name); err != nil {
		return fmt.Errorf("role %s is not assumable: %w",
			tenant.RoleARN(issuerPartition(cfg), accountID, name), err)
	}

	fmt.Printf("Role %s assumed successfully (test credentials discarded)\n",
		tenant.RoleARN(issuerPartition(cfg), accountID, name))
	return nil
}

func issuerPartition(cfg *config.Config) string {
	if cfg.AWS.Partition != "" {
		return cfg.AWS.Partition
	}
	return issuer.DefaultPartition
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fruitstand/dispenser/internal/audit"
	"github.com/fruitstand/dispenser/internal/config"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent issuance decisions",
	Long:  `Show the most recent issuance decisions from the audit log, newest first.`,
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "number of decisions to show")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Audit.Path == "" {
		return fmt.Errorf("no audit log configured (set audit.path in dispenser.yaml)")
	}

	store, err := audit.OpenStore(cfg.Audit.Path)
	if err != nil {
		return fmt.Errorf("opening audit store: %w", err)
	}
	defer store.Close()

	decisions, err := store.Recent(auditLimit)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(decisions)
	}

	if len(decisions) == 0 {
		fmt.Println("No decisions recorded")
		return nil
	}
	for _, d := range decisions {
		tenantName := d.Tenant
		if tenantName == "" {
			tenantName = "-"
		}
		fmt.Printf("%s  %-12s  %-20s  %d\n",
			d.Time.Local().Format(time.RFC3339), tenantName, d.Outcome, d.Status)
	}
	return nil
}

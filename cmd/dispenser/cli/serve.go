package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fruitstand/dispenser/internal/audit"
	"github.com/fruitstand/dispenser/internal/config"
	"github.com/fruitstand/dispenser/internal/gateway"
	"github.com/fruitstand/dispenser/internal/issuer"
	"github.com/fruitstand/dispenser/internal/log"
	"github.com/fruitstand/dispenser/internal/secrets"
	"github.com/fruitstand/dispenser/internal/tenant"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the credential gateway",
	Long: `Run the credential gateway in the foreground.

The gateway serves GET /credentials/<fruit> with HTTP Basic
Authentication and returns short-lived AWS credentials for the
tenant's role.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The secret map is loaded once and immutable for the process lifetime.
	rawMap, err := secrets.Resolve(ctx, cfg.Secrets)
	if err != nil {
		return fmt.Errorf("loading tenant secrets: %w", err)
	}
	secretMap := tenant.SecretMap(rawMap)
	log.Info("tenant secrets loaded", "source", cfg.Secrets, "tenants", len(secretMap))

	iss, accountID, err := buildIssuer(ctx, cfg)
	if err != nil {
		return err
	}

	opts := gateway.Options{
		Secrets: gateway.SecretSourceFunc(func(ctx context.Context) (tenant.SecretMap, error) {
			return secretMap, nil
		}),
		Issuer: iss,
	}

	if cfg.Audit.Path != "" {
		store, err := audit.OpenStore(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("opening audit store: %w", err)
		}
		defer store.Close()
		opts.Recorder = store
	}

	server := gateway.NewServer(cfg.Listen, opts)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting gateway: %w", err)
	}

	log.Info("gateway started", "addr", server.Addr(), "account", accountID)
	fmt.Printf("Dispenser listening on %s (account %s)\n", server.Addr(), accountID)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// buildIssuer creates the STS-backed issuer, discovering the account ID
// from the caller identity unless the config pins one.
func buildIssuer(ctx context.Context, cfg *config.Config) (*issuer.Issuer, string, error) {
	stsClient, err := issuer.NewClient(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, "", err
	}

	accountID := cfg.AWS.AccountID
	if accountID == "" {
		accountID, err = issuer.DiscoverAccountID(ctx, stsClient)
		if err != nil {
			return nil, "", err
		}
	}

	iss := issuer.New(stsClient, issuer.Config{
		AccountID:       accountID,
		Partition:       cfg.AWS.Partition,
		SessionDuration: cfg.AWS.SessionDuration.Std(),
	})
	return iss, accountID, nil
}

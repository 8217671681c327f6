// Package cli implements the dispenser command-line interface using Cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fruitstand/dispenser/internal/log"
)

var (
	verbose    bool
	jsonOut    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "dispenser",
	Short: "Dispenser - tenant-scoped AWS credential issuance",
	Long: `Dispenser is a credential-issuance gateway. Authenticated tenants
exchange HTTP Basic credentials for short-lived AWS credentials scoped
to their own IAM role (StudentRole-<Tenant>).

Tenant secrets come from a pluggable backend: an environment variable,
a file, or AWS Secrets Manager.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Options{
			Verbose:    verbose,
			JSONFormat: jsonOut,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "log in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to dispenser.yaml")
}

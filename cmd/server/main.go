package main // Entry point package

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iliyamo/restaurant-booking/internal/config"
)

// newRootCmd builds the CLI.  Running it without a subcommand starts the
// HTTP server.
func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	root := &cobra.Command{
		Use:           "restaurant",
		Short:         "Table booking and meal pre-ordering service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return readConfigFile(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (yaml, json or env)")
	addServeFlags(root, v)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	root.AddCommand(serve, newFloorplanCmd(), newMenuCmd(v))
	return root
}

// addServeFlags exposes the most common keys as persistent flags so both
// "restaurant --port 9090" and "restaurant serve --port 9090" work.  Flags
// win over the environment.
func addServeFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()
	f.String("port", "", "HTTP port (APP_PORT)")
	f.String("env", "", "environment: dev, test or prod (APP_ENV)")
	f.Int("tax-percent", 0, "tax applied at checkout (TAX_PERCENT)")
	cobra.CheckErr(v.BindPFlag("APP_PORT", f.Lookup("port")))
	cobra.CheckErr(v.BindPFlag("APP_ENV", f.Lookup("env")))
	cobra.CheckErr(v.BindPFlag("TAX_PERCENT", f.Lookup("tax-percent")))
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Womni backoffice API server",
		Long: `Backoffice: the administrative API for Womni employees and tenant accounts.

It exposes employee and account CRUD, employee-account role management, and a
dual-path request authenticator: employee bearer tokens for backoffice users
and account API keys for tenant-level access routed to regional backends.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./backoffice.yaml)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newEmployeeCmd())

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("backoffice")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/womni")
	}

	viper.SetEnvPrefix("WOMNI")
	viper.AutomaticEnv()
	viper.ReadInConfig() // config file is optional

	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("auth.token_ttl", "8760h")
	viper.SetDefault("regions.default", "eu")
}

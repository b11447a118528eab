package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "/etc/dn42prov/config.yml"

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "dn42prov",
		Short: "Provision WireGuard tunnels and compile DNS zone data for a dn42 node",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", defaultConfigPath, "Path to the node configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newProvisionCmd(flags),
		newZonesCmd(flags),
		newServeCmd(flags),
		newGenkeyCmd(),
	)
	return cmd
}

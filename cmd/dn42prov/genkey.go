package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dn42prov/pkg/wireguard"
)

func newGenkeyCmd() *cobra.Command {
	var withPSK bool
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate a WireGuard keypair for a new peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			private, public, err := wireguard.GenerateKeyPair()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PrivateKey = %s\nPublicKey = %s\n", private, public)
			if withPSK {
				psk, err := wireguard.GeneratePresharedKey()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PresharedKey = %s\n", psk)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withPSK, "psk", false, "Also generate a preshared key")
	return cmd
}

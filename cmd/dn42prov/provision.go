package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dn42prov/internal/adapters/ifupdown"
	"dn42prov/internal/adapters/render"
	"dn42prov/internal/application/provision"
	"dn42prov/internal/config"
	"dn42prov/pkg/wireguard"
)

func newProvisionCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool
	var skipRestart bool
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Render per-peer tunnel and interface files and restart changed tunnels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := provision.NewService(
				render.New(),
				ifupdown.NewRunner(cfg.WireGuard.InterfacesFile, dryRun),
				wireguard.KeyGen{},
			)
			report, err := svc.Run(ctx, provision.Params{
				Peers:             cfg.WireGuard.Peers,
				TunnelDir:         cfg.WireGuard.TunnelDir,
				InterfacesDir:     cfg.WireGuard.InterfacesDir,
				TunnelTemplate:    cfg.TunnelTemplate(),
				InterfaceTemplate: cfg.InterfaceTemplate(),
				SkipRestart:       cfg.WireGuard.SkipRestart || skipRestart,
			})
			if err != nil {
				return fmt.Errorf("provisioning aborted: %w", err)
			}
			log.Info().
				Str("run_id", report.RunID).
				Int("rendered", len(report.Rendered)).
				Strs("restart_set", report.RestartSet).
				Strs("restarted", report.Restarted).
				Bool("restarts_skipped", report.RestartsSkipped).
				Msg("provisioning complete")
			for name, reason := range report.FailedRestarts {
				log.Warn().Str("interface", name).Str("reason", reason).Msg("restart failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render artifacts but do not execute ifdown/ifup")
	cmd.Flags().BoolVar(&skipRestart, "skip-restart", false, "Suppress all restarts regardless of detected changes")
	return cmd
}

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dn42prov/internal/adapters/pdns"
	"dn42prov/internal/adapters/render"
	"dn42prov/internal/adapters/zonegen"
	"dn42prov/internal/application/zonecompile"
	"dn42prov/internal/config"
)

func newZonesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "Compile DNS zone data and secondary-zone configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			syncer := render.New()
			svc := zonecompile.NewService(
				zonegen.NewWriter(cfg.DNS.OutputDir, syncer),
				pdns.NewSecondary(syncer),
			)
			report, err := svc.Run(zonecompile.Params{
				Zones:     cfg.DNS.Zones,
				Generate:  cfg.DNS.Generate,
				Inventory: cfg.Nodes,
				Secondary: cfg.DNS.Secondary,
			})
			if err != nil {
				return err
			}
			log.Info().
				Str("run_id", report.RunID).
				Int("zones", len(report.Zones)).
				Int("warnings", len(report.Warnings)).
				Strs("changed_zones", report.ChangedZones).
				Strs("changed_secondary", report.ChangedSecondary).
				Msg("zone compile complete")
			return nil
		},
	}
}

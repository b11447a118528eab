package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	dnsadapter "dn42prov/internal/adapters/dns"
	"dn42prov/internal/config"
	"dn42prov/internal/domain/zone"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiled zone records over DNS for inspection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.DNS.ListenAddr
			}
			srv := dnsadapter.NewServer(compileZones(cfg))

			// SIGHUP recompiles the zone data without restarting the
			// listener.
			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)
			go func() {
				for range hup {
					reloaded, err := config.Load(flags.configPath)
					if err != nil {
						log.Error().Err(err).Msg("reload failed, keeping previous zone data")
						continue
					}
					srv.Update(compileZones(reloaded))
					log.Info().Msg("zone data reloaded")
				}
			}()

			return srv.Start(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to dns.listen_addr)")
	return cmd
}

func compileZones(cfg *config.Config) map[string][]zone.FlatRecord {
	flat, warnings := zone.Expand(cfg.DNS.Zones, cfg.Nodes)
	for _, w := range warnings {
		log.Warn().Str("zone", w.Zone).Str("record", w.Record).Msg(w.Reason)
	}
	return flat
}

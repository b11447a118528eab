// Package zonecompile orchestrates the zone data compiler: expand the
// authored record mappings, hand the flattened zones to the generator
// input writer and sync the secondary-zone mirroring configuration.
package zonecompile

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dn42prov/internal/adapters/pdns"
	"dn42prov/internal/adapters/zonegen"
	"dn42prov/internal/domain/inventory"
	"dn42prov/internal/domain/zone"
)

// Params carries one compile run's inputs.
type Params struct {
	Zones     zone.Mapping
	Generate  map[string][]zone.GenerateRule
	Inventory inventory.Inventory
	Secondary zone.SecondarySet
}

// Report is the user-visible outcome: compiled zones, changed outputs
// and the per-record warnings that did not stop the compile.
type Report struct {
	RunID            string
	Zones            map[string][]zone.FlatRecord
	ChangedZones     []string
	ChangedSecondary []string
	Warnings         []zone.Warning
}

// Service wires the compiler to its output writers.
type Service struct {
	writer    *zonegen.Writer
	secondary *pdns.Secondary
}

func NewService(writer *zonegen.Writer, secondary *pdns.Secondary) *Service {
	return &Service{writer: writer, secondary: secondary}
}

// Run compiles every zone. Record resolution failures are collected as
// warnings; only output I/O errors abort.
func (s *Service) Run(p Params) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	logger := log.With().Str("run_id", report.RunID).Logger()

	flat, warnings := zone.Expand(p.Zones, p.Inventory)
	report.Zones = flat
	report.Warnings = warnings
	for _, w := range warnings {
		logger.Warn().Str("zone", w.Zone).Str("record", w.Record).Msg(w.Reason)
	}

	changed, err := s.writer.WriteAll(flat, p.Generate)
	if err != nil {
		return report, err
	}
	report.ChangedZones = changed

	changedSec, err := s.secondary.Apply(p.Secondary)
	if err != nil {
		return report, err
	}
	report.ChangedSecondary = changedSec

	logger.Info().
		Int("zones", len(flat)).
		Int("warnings", len(warnings)).
		Strs("changed", changed).
		Msg("zone compile complete")
	return report, nil
}

// Package zonegen serializes compiled zone data into the input documents
// consumed by the external zone-file generator. The generator owns the
// Bind zone-file output and the ${...} expansion of generate rules; this
// side of the contract hands over flattened records and rules verbatim.
package zonegen

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"dn42prov/internal/domain/zone"
	"dn42prov/internal/ports"
)

// Document is the per-zone input handed to the generator. An empty zone
// still produces a document so the generator sees it as existing.
type Document struct {
	Zone     string              `yaml:"zone"`
	Records  []zone.FlatRecord   `yaml:"records"`
	Generate []zone.GenerateRule `yaml:"generate,omitempty"`
}

// Writer syncs one YAML document per zone into the output directory.
type Writer struct {
	Dir    string
	syncer ports.ArtifactSyncer
}

func NewWriter(dir string, syncer ports.ArtifactSyncer) *Writer {
	return &Writer{Dir: dir, syncer: syncer}
}

// WriteAll emits documents for every compiled zone and returns the names
// of zones whose document changed.
func (w *Writer) WriteAll(zones map[string][]zone.FlatRecord, generate map[string][]zone.GenerateRule) ([]string, error) {
	names := make([]string, 0, len(zones))
	for name := range zones {
		names = append(names, name)
	}
	sort.Strings(names)
	var changed []string
	for _, name := range names {
		doc := Document{Zone: name, Records: zones[name], Generate: generate[name]}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return changed, fmt.Errorf("marshal zone %s: %w", name, err)
		}
		path := filepath.Join(w.Dir, name+".yml")
		didChange, err := w.syncer.Sync(path, string(data), false)
		if err != nil {
			return changed, fmt.Errorf("zone %s: %w", name, err)
		}
		if didChange {
			changed = append(changed, name)
			log.Info().Str("zone", name).Int("records", len(doc.Records)).Msg("zone input updated")
		}
	}
	return changed, nil
}

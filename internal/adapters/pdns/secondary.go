// Package pdns emits the secondary-zone configuration consumed by
// PowerDNS. Mirrored zones carry no authored records; they are fetched
// as opaque zone data from the upstream primaries.
package pdns

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"dn42prov/internal/domain/zone"
	"dn42prov/internal/ports"
)

// Secondary writes one bind-style stanza file per mirrored zone into the
// secondary-zones directory.
type Secondary struct {
	syncer ports.ArtifactSyncer
}

func NewSecondary(syncer ports.ArtifactSyncer) *Secondary {
	return &Secondary{syncer: syncer}
}

// Apply syncs the stanza files for every zone in the set and returns the
// zones whose configuration changed on disk.
func (s *Secondary) Apply(set zone.SecondarySet) ([]string, error) {
	if len(set.Zones) > 0 && len(set.PrimaryServers) == 0 {
		return nil, fmt.Errorf("secondary zones declared but no primary servers")
	}
	var changed []string
	for _, name := range set.Zones {
		path := filepath.Join(set.Dir, name+".conf")
		didChange, err := s.syncer.Sync(path, Stanza(name, set.PrimaryServers, set.Dir), false)
		if err != nil {
			return changed, fmt.Errorf("secondary zone %s: %w", name, err)
		}
		if didChange {
			changed = append(changed, name)
			log.Info().Str("zone", name).Str("path", path).Msg("secondary zone config updated")
		}
	}
	return changed, nil
}

// Stanza renders the bind-style secondary declaration for one zone. The
// primary server order is preserved: PowerDNS tries them in turn.
func Stanza(name string, primaries []string, dir string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("zone \"%s\" {\n", name))
	sb.WriteString("    type slave;\n")
	sb.WriteString(fmt.Sprintf("    file \"%s\";\n", filepath.Join(dir, name+".zone")))
	sb.WriteString("    masters {")
	for _, p := range primaries {
		sb.WriteString(fmt.Sprintf(" %s;", p))
	}
	sb.WriteString(" };\n")
	sb.WriteString("};\n")
	return sb.String()
}

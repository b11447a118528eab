package zone

import (
	"fmt"
	"sort"

	"dn42prov/internal/domain/inventory"
)

// Warning reports a per-record resolution failure. It never aborts the
// compile; the record (or the missing address family) is skipped.
type Warning struct {
	Zone   string
	Record string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s/%s: %s", w.Zone, w.Record, w.Reason)
}

// Expand flattens every zone in the mapping into concrete records.
// Zones with no authored records appear in the result with a nil record
// slice so downstream tooling still sees them as existing zones.
func Expand(zones Mapping, inv inventory.Inventory) (map[string][]FlatRecord, []Warning) {
	out := make(map[string][]FlatRecord, len(zones))
	var warnings []Warning
	for _, zoneName := range sortedKeys(zones) {
		records := zones[zoneName]
		out[zoneName] = nil
		for _, name := range sortedKeys(records) {
			flat, warns := expandRecord(zoneName, name, records[name], inv)
			out[zoneName] = append(out[zoneName], flat...)
			warnings = append(warnings, warns...)
		}
	}
	return out, warnings
}

func expandRecord(zoneName, name string, rec Record, inv inventory.Inventory) ([]FlatRecord, []Warning) {
	switch rec.Kind {
	case KindHostRecord:
		return hostRecords(name, rec.IPv4, rec.IPv6), nil
	case KindHostAlias:
		node, err := inv.Lookup(rec.Target)
		if err != nil {
			return nil, []Warning{{Zone: zoneName, Record: name, Reason: err.Error()}}
		}
		if node.IPv4 == "" && node.IPv6 == "" {
			return nil, []Warning{{
				Zone: zoneName, Record: name,
				Reason: fmt.Sprintf("node %q has no addresses", rec.Target),
			}}
		}
		flat := hostRecords(name, node.IPv4, node.IPv6)
		var warns []Warning
		if node.IPv4 == "" {
			warns = append(warns, partialWarning(zoneName, name, rec.Target, "IPv4"))
		}
		if node.IPv6 == "" {
			warns = append(warns, partialWarning(zoneName, name, rec.Target, "IPv6"))
		}
		return flat, warns
	case KindCNAME:
		return []FlatRecord{{Name: name, Type: "CNAME", Target: rec.Target}}, nil
	case KindMulti:
		flat := make([]FlatRecord, 0, len(rec.Entries))
		for _, e := range rec.Entries {
			flat = append(flat, FlatRecord{Name: name, Type: e.Type, Target: e.Target})
		}
		return flat, nil
	default:
		return nil, []Warning{{
			Zone: zoneName, Record: name,
			Reason: fmt.Sprintf("unknown record kind %q", rec.Kind),
		}}
	}
}

func hostRecords(name, ip4, ip6 string) []FlatRecord {
	var flat []FlatRecord
	if ip4 != "" {
		flat = append(flat, FlatRecord{Name: name, Type: "A", Target: ip4})
	}
	if ip6 != "" {
		flat = append(flat, FlatRecord{Name: name, Type: "AAAA", Target: ip6})
	}
	return flat
}

func partialWarning(zoneName, name, target, family string) Warning {
	return Warning{
		Zone: zoneName, Record: name,
		Reason: fmt.Sprintf("node %q has no %s address", target, family),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

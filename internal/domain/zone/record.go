package zone

import (
	"fmt"

	"github.com/miekg/dns"
	"gopkg.in/yaml.v3"
)

// Kind discriminates the record variants a zone mapping may hold.
type Kind string

const (
	KindHostRecord Kind = "host_record"
	KindHostAlias  Kind = "ansible_host_alias"
	KindCNAME      Kind = "CNAME"
	KindMulti      Kind = "multi"
)

// RawEntry is one sub-entry of a multi record: an explicit RR type and
// target emitted verbatim, in declared order.
type RawEntry struct {
	Type   string `yaml:"type" json:"type"`
	Target string `yaml:"target" json:"target"`
}

// Record is a tagged union over the supported record variants. Exactly
// one variant's fields are populated, according to Kind.
type Record struct {
	Kind Kind

	// host_record
	IPv4 string
	IPv6 string

	// ansible_host_alias / CNAME
	Target string

	// multi
	Entries []RawEntry
}

// record mirrors the YAML shape before dispatching on the type key.
type record struct {
	Type    string     `yaml:"type"`
	IPv4    string     `yaml:"ip4"`
	IPv6    string     `yaml:"ip6"`
	Target  string     `yaml:"target"`
	Records []RawEntry `yaml:"records"`
}

// UnmarshalYAML dispatches on the type key and rejects shapes that do
// not match the declared variant.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	var raw record
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch Kind(raw.Type) {
	case KindHostRecord:
		if raw.IPv4 == "" && raw.IPv6 == "" {
			return fmt.Errorf("host_record: needs ip4 and/or ip6")
		}
		*r = Record{Kind: KindHostRecord, IPv4: raw.IPv4, IPv6: raw.IPv6}
	case KindHostAlias:
		if raw.Target == "" {
			return fmt.Errorf("ansible_host_alias: missing target node")
		}
		*r = Record{Kind: KindHostAlias, Target: raw.Target}
	case KindCNAME:
		if raw.Target == "" {
			return fmt.Errorf("CNAME: missing target")
		}
		*r = Record{Kind: KindCNAME, Target: raw.Target}
	case KindMulti:
		for i, e := range raw.Records {
			if _, ok := dns.StringToType[e.Type]; !ok {
				return fmt.Errorf("multi: entry %d: unknown RR type %q", i, e.Type)
			}
			if e.Target == "" {
				return fmt.Errorf("multi: entry %d: missing target", i)
			}
		}
		*r = Record{Kind: KindMulti, Entries: raw.Records}
	default:
		return fmt.Errorf("unknown record type %q", raw.Type)
	}
	return nil
}

// Mapping is zone name -> record name -> Record. An empty per-zone
// mapping is a valid, delegation-only zone.
type Mapping map[string]map[string]Record

// FlatRecord is one concrete resource record after expansion, ready for
// a zone-file writer. Type is the textual RR type ("A", "AAAA", ...).
type FlatRecord struct {
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	Target string `yaml:"target" json:"target"`
}

// GenerateRule is a range-expansion rule handed through verbatim to the
// external zone generator, which owns its substitution syntax. Only the
// range bounds are validated here.
type GenerateRule struct {
	Start    int    `yaml:"start" json:"start"`
	End      int    `yaml:"end" json:"end"`
	Template string `yaml:"template" json:"template"`
	RType    string `yaml:"rtype" json:"rtype"`
	Target   string `yaml:"target" json:"target"`
}

// Validate rejects rules no generator could expand.
func (g GenerateRule) Validate() error {
	if g.Start > g.End {
		return fmt.Errorf("generate rule: start %d > end %d", g.Start, g.End)
	}
	if g.Template == "" {
		return fmt.Errorf("generate rule: empty template")
	}
	if _, ok := dns.StringToType[g.RType]; !ok {
		return fmt.Errorf("generate rule: unknown RR type %q", g.RType)
	}
	return nil
}

// SecondarySet describes zones mirrored from upstream primaries into the
// secondary-zones directory. No record expansion applies to these.
type SecondarySet struct {
	Zones          []string `yaml:"zones" json:"zones"`
	PrimaryServers []string `yaml:"primary_servers" json:"primary_servers"`
	Dir            string   `yaml:"dir" json:"dir"`
}

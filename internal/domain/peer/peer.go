package peer

import "fmt"

// DefaultPriority is used when a peer does not declare one. The priority
// only orders interface definition files for the external interface
// manager; it has no effect on restart ordering.
const DefaultPriority = 42

// Descriptor represents one WireGuard peer. Name doubles as the tunnel
// interface name and must be unique across the peer list.
type Descriptor struct {
	Name      string `yaml:"name" json:"name"`
	Priority  int    `yaml:"priority,omitempty" json:"priority,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	PublicKey string `yaml:"public_key" json:"public_key"`
	Port      int    `yaml:"port,omitempty" json:"port,omitempty"`
	LocalV4   string `yaml:"local_v4,omitempty" json:"local_v4,omitempty"`
	LocalV6   string `yaml:"local_v6,omitempty" json:"local_v6,omitempty"`
	PeerV4    string `yaml:"peer_v4,omitempty" json:"peer_v4,omitempty"`
	PeerV6    string `yaml:"peer_v6,omitempty" json:"peer_v6,omitempty"`
	Keepalive int    `yaml:"keepalive,omitempty" json:"keepalive,omitempty"`
}

// EffectivePriority returns the declared priority or DefaultPriority.
func (d Descriptor) EffectivePriority() int {
	if d.Priority == 0 {
		return DefaultPriority
	}
	return d.Priority
}

// InterfaceFileName returns the interface definition file name for the
// peer, prefixed with the zero-padded priority so a directory listing
// yields a deterministic order.
func (d Descriptor) InterfaceFileName() string {
	return fmt.Sprintf("%02d-%s", d.EffectivePriority(), d.Name)
}

// Validate checks the fields the provisioner cannot work without.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("peer with empty name")
	}
	if d.PublicKey == "" {
		return fmt.Errorf("peer %q: missing public_key", d.Name)
	}
	return nil
}

// RenderResult records whether rendering a peer's artifact changed the
// content already on disk.
type RenderResult struct {
	PeerName string
	Changed  bool
}

// RestartSet computes the interfaces that must be bounced: the union of
// peer names whose tunnel OR interface artifact changed, deduplicated,
// preserving first-seen order.
func RestartSet(tunnel, iface []RenderResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, results := range [][]RenderResult{tunnel, iface} {
		for _, r := range results {
			if !r.Changed || seen[r.PeerName] {
				continue
			}
			seen[r.PeerName] = true
			out = append(out, r.PeerName)
		}
	}
	return out
}

// Package inventory holds the shared node address data both the tunnel
// provisioner and the zone compiler consume. It is passed explicitly at
// invocation time instead of being looked up ambiently.
package inventory

import "fmt"

// Node is one machine's own and anycast addresses. Either family may be
// absent.
type Node struct {
	IPv4     string `yaml:"ip4,omitempty" json:"ip4,omitempty"`
	IPv6     string `yaml:"ip6,omitempty" json:"ip6,omitempty"`
	Anycast4 string `yaml:"anycast4,omitempty" json:"anycast4,omitempty"`
	Anycast6 string `yaml:"anycast6,omitempty" json:"anycast6,omitempty"`
}

// Inventory maps node name to its addresses. Treat as immutable once
// constructed.
type Inventory map[string]Node

// Lookup returns the node for name.
func (inv Inventory) Lookup(name string) (Node, error) {
	n, ok := inv[name]
	if !ok {
		return Node{}, fmt.Errorf("unknown node %q", name)
	}
	return n, nil
}

// Package config loads the declarative node configuration: WireGuard
// peers, DNS zone data, the shared node inventory and the paths the
// rendered artifacts land in.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v8"
	"gopkg.in/yaml.v3"

	"dn42prov/internal/domain/inventory"
	"dn42prov/internal/domain/peer"
	"dn42prov/internal/domain/zone"
)

// Config is the full file schema plus environment overrides.
type Config struct {
	WireGuard WireGuardConfig     `yaml:"wireguard"`
	DNS       DNSConfig           `yaml:"dns"`
	Nodes     inventory.Inventory `yaml:"nodes"`
}

// WireGuardConfig drives the tunnel provisioner.
type WireGuardConfig struct {
	Peers []peer.Descriptor `yaml:"peers"`
	// Destination directories for the two artifacts per peer.
	TunnelDir     string `yaml:"tunnel_dir"`
	InterfacesDir string `yaml:"interfaces_dir"`
	// The interfaces file handed to ifup/ifdown via --interfaces.
	InterfacesFile string `yaml:"interfaces_file"`
	// Inline template overrides; empty means the built-in defaults.
	TunnelTemplate    string `yaml:"tunnel_template"`
	InterfaceTemplate string `yaml:"interface_template"`
	// Suppresses all restarts regardless of detected changes.
	SkipRestart bool `yaml:"skip_wg_restart"`
}

// DNSConfig drives the zone data compiler.
type DNSConfig struct {
	Domain     string                         `yaml:"domain"`
	Zones      zone.Mapping                   `yaml:"zones"`
	Generate   map[string][]zone.GenerateRule `yaml:"generate"`
	Secondary  zone.SecondarySet              `yaml:"secondary"`
	OutputDir  string                         `yaml:"output_dir"`
	ListenAddr string                         `yaml:"listen_addr"`
}

// envOverrides are operational knobs that may be set without touching
// the declarative file.
type envOverrides struct {
	SkipRestart    bool   `env:"DN42PROV_SKIP_RESTART"`
	TunnelDir      string `env:"DN42PROV_TUNNEL_DIR"`
	InterfacesDir  string `env:"DN42PROV_INTERFACES_DIR"`
	InterfacesFile string `env:"DN42PROV_INTERFACES_FILE"`
	ZoneOutputDir  string `env:"DN42PROV_ZONE_OUTPUT_DIR"`
}

// DefaultConfig returns a Config with the standard paths filled in.
func DefaultConfig() *Config {
	return &Config{
		WireGuard: WireGuardConfig{
			TunnelDir:      "/etc/wireguard",
			InterfacesDir:  "/etc/network/interfaces.d",
			InterfacesFile: "/etc/network/interfaces",
		},
		DNS: DNSConfig{
			OutputDir:  "/var/lib/dn42prov/zones",
			ListenAddr: ":5353",
			Secondary: zone.SecondarySet{
				Dir: "/var/lib/powerdns/secondary",
			},
		},
		Nodes: inventory.Inventory{},
	}
}

// Load reads the YAML file at path over the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	// Unknown keys are rejected: a typoed field would otherwise pass
	// validation with the intended value silently dropped.
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return err
	}
	if ov.SkipRestart {
		c.WireGuard.SkipRestart = true
	}
	if ov.TunnelDir != "" {
		c.WireGuard.TunnelDir = ov.TunnelDir
	}
	if ov.InterfacesDir != "" {
		c.WireGuard.InterfacesDir = ov.InterfacesDir
	}
	if ov.InterfacesFile != "" {
		c.WireGuard.InterfacesFile = ov.InterfacesFile
	}
	if ov.ZoneOutputDir != "" {
		c.DNS.OutputDir = ov.ZoneOutputDir
	}
	return nil
}

// Validate checks the declarative parts: peer names unique and complete,
// generate rules expandable.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.WireGuard.Peers))
	for _, p := range c.WireGuard.Peers {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate peer name %q", p.Name)
		}
		seen[p.Name] = true
	}
	for zoneName, rules := range c.DNS.Generate {
		if _, ok := c.DNS.Zones[zoneName]; !ok {
			return fmt.Errorf("generate rules for undeclared zone %q", zoneName)
		}
		for _, r := range rules {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("zone %s: %w", zoneName, err)
			}
		}
	}
	return nil
}

// TunnelTemplate returns the configured or built-in tunnel template.
func (c *Config) TunnelTemplate() string {
	if c.WireGuard.TunnelTemplate != "" {
		return c.WireGuard.TunnelTemplate
	}
	return DefaultTunnelTemplate
}

// InterfaceTemplate returns the configured or built-in interface
// definition template.
func (c *Config) InterfaceTemplate() string {
	if c.WireGuard.InterfaceTemplate != "" {
		return c.WireGuard.InterfaceTemplate
	}
	return DefaultInterfaceTemplate
}

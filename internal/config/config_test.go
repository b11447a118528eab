package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dn42prov/internal/domain/zone"
)

const sampleConfig = `
wireguard:
  peers:
    - name: alpha
      priority: 5
      public_key: pk-alpha
      endpoint: 198.51.100.1:51820
      local_v4: 172.20.0.1/32
      peer_v4: 172.20.0.2/32
    - name: beta
      public_key: pk-beta
  skip_wg_restart: false
dns:
  domain: example.dn42
  zones:
    example.dn42:
      "@":
        type: multi
        records:
          - {type: NS, target: ns1.lare.dn42.}
          - {type: NS, target: ns1.bandura.dn42.}
      host1:
        type: host_record
        ip4: 172.20.0.1
      gw:
        type: ansible_host_alias
        target: node1
      www:
        type: CNAME
        target: "@"
    empty.dn42: {}
  secondary:
    zones: [dn42]
    primary_servers: [172.20.129.1, "fd42:d42:d42:54::1"]
    dir: /var/lib/powerdns/secondary
nodes:
  node1:
    ip4: 172.20.0.1
    ip6: fd42::1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	require.Len(t, cfg.WireGuard.Peers, 2)
	assert.Equal(t, "alpha", cfg.WireGuard.Peers[0].Name)
	assert.Equal(t, 5, cfg.WireGuard.Peers[0].Priority)

	// Defaults survive partial files.
	assert.Equal(t, "/etc/wireguard", cfg.WireGuard.TunnelDir)
	assert.Equal(t, "/var/lib/dn42prov/zones", cfg.DNS.OutputDir)

	rec := cfg.DNS.Zones["example.dn42"]["@"]
	assert.Equal(t, zone.KindMulti, rec.Kind)
	require.Len(t, rec.Entries, 2)

	// An empty zone parses as a present, empty mapping.
	empty, ok := cfg.DNS.Zones["empty.dn42"]
	assert.True(t, ok)
	assert.Empty(t, empty)

	assert.Equal(t, []string{"172.20.129.1", "fd42:d42:d42:54::1"}, cfg.DNS.Secondary.PrimaryServers)
	assert.Equal(t, "fd42::1", cfg.Nodes["node1"].IPv6)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestLoadDuplicatePeerName(t *testing.T) {
	doc := `
wireguard:
  peers:
    - {name: alpha, public_key: a}
    - {name: alpha, public_key: b}
`
	_, err := Load(writeConfig(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate peer name")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := `
wireguard:
  peers:
    - name: alpha
      public_key: pk-alpha
      endpont: 198.51.100.1:51820
`
	_, err := Load(writeConfig(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpont")
}

func TestLoadRejectsUnknownTopLevelKey(t *testing.T) {
	_, err := Load(writeConfig(t, "wierguard:\n  peers: []\n"))
	assert.Error(t, err)
}

func TestLoadPeerWithoutPublicKey(t *testing.T) {
	doc := `
wireguard:
  peers:
    - {name: alpha}
`
	_, err := Load(writeConfig(t, doc))
	assert.Error(t, err)
}

func TestLoadGenerateRulesForUndeclaredZone(t *testing.T) {
	doc := `
dns:
  zones:
    example.dn42: {}
  generate:
    other.dn42:
      - {start: 0, end: 10, template: "host-${0,1,d}", rtype: A, target: "172.20.0.${0,1,d}"}
`
	_, err := Load(writeConfig(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared zone")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DN42PROV_SKIP_RESTART", "true")
	t.Setenv("DN42PROV_TUNNEL_DIR", "/tmp/wg")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.True(t, cfg.WireGuard.SkipRestart)
	assert.Equal(t, "/tmp/wg", cfg.WireGuard.TunnelDir)
}

func TestTemplateDefaultsAndOverrides(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultTunnelTemplate, cfg.TunnelTemplate())
	assert.Equal(t, DefaultInterfaceTemplate, cfg.InterfaceTemplate())

	cfg.WireGuard.TunnelTemplate = "custom"
	assert.Equal(t, "custom", cfg.TunnelTemplate())
}

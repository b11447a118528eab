package zonecompile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dn42prov/internal/adapters/pdns"
	"dn42prov/internal/adapters/zonegen"
	"dn42prov/internal/domain/inventory"
	"dn42prov/internal/domain/zone"
)

type mockSyncer struct {
	synced map[string]string
}

func newMockSyncer() *mockSyncer { return &mockSyncer{synced: make(map[string]string)} }

func (m *mockSyncer) Render(tmpl string, data any) (string, error) { return tmpl, nil }

func (m *mockSyncer) Existing(path string) (string, bool) {
	content, ok := m.synced[path]
	return content, ok
}

func (m *mockSyncer) Sync(path, content string, secret bool) (bool, error) {
	prev, existed := m.synced[path]
	m.synced[path] = content
	return !existed || prev != content, nil
}

func newTestService(syncer *mockSyncer) *Service {
	return NewService(
		zonegen.NewWriter("/srv/zones", syncer),
		pdns.NewSecondary(syncer),
	)
}

func TestRunCompilesAndWrites(t *testing.T) {
	syncer := newMockSyncer()
	svc := newTestService(syncer)

	report, err := svc.Run(Params{
		Zones: zone.Mapping{
			"example.dn42": {
				"@":   {Kind: zone.KindMulti, Entries: []zone.RawEntry{{Type: "A", Target: "1.2.3.4"}}},
				"www": {Kind: zone.KindCNAME, Target: "@"},
			},
		},
		Inventory: inventory.Inventory{},
		Secondary: zone.SecondarySet{
			Zones:          []string{"dn42"},
			PrimaryServers: []string{"172.20.129.1"},
			Dir:            "/srv/secondary",
		},
	})
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, []string{"example.dn42"}, report.ChangedZones)
	assert.Equal(t, []string{"dn42"}, report.ChangedSecondary)
	assert.Contains(t, syncer.synced, "/srv/zones/example.dn42.yml")
	assert.Contains(t, syncer.synced, "/srv/secondary/dn42.conf")
}

func TestRunCollectsWarningsWithoutAborting(t *testing.T) {
	syncer := newMockSyncer()
	svc := newTestService(syncer)

	report, err := svc.Run(Params{
		Zones: zone.Mapping{
			"example.dn42": {
				"gone": {Kind: zone.KindHostAlias, Target: "missing"},
				"host": {Kind: zone.KindHostRecord, IPv4: "172.20.0.1"},
			},
		},
		Inventory: inventory.Inventory{},
	})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "gone", report.Warnings[0].Record)
	// The rest of the zone still compiled.
	assert.Equal(t, []zone.FlatRecord{{Name: "host", Type: "A", Target: "172.20.0.1"}}, report.Zones["example.dn42"])
}

func TestRunEmptyZoneIsNotAnError(t *testing.T) {
	syncer := newMockSyncer()
	svc := newTestService(syncer)

	report, err := svc.Run(Params{
		Zones:     zone.Mapping{"empty.dn42": {}},
		Inventory: inventory.Inventory{},
	})
	require.NoError(t, err)
	records, ok := report.Zones["empty.dn42"]
	assert.True(t, ok, "empty zone must still exist as a named unit")
	assert.Empty(t, records)
	assert.Contains(t, syncer.synced, "/srv/zones/empty.dn42.yml")
}

func TestRunIdempotentSecondPass(t *testing.T) {
	syncer := newMockSyncer()
	svc := newTestService(syncer)

	params := Params{
		Zones:     zone.Mapping{"example.dn42": {"host": {Kind: zone.KindHostRecord, IPv4: "172.20.0.1"}}},
		Inventory: inventory.Inventory{},
		Secondary: zone.SecondarySet{Zones: []string{"dn42"}, PrimaryServers: []string{"172.20.129.1"}, Dir: "/srv"},
	}
	_, err := svc.Run(params)
	require.NoError(t, err)
	report, err := svc.Run(params)
	require.NoError(t, err)
	assert.Empty(t, report.ChangedZones)
	assert.Empty(t, report.ChangedSecondary)
}

// Package provision orchestrates the tunnel provisioner: render each
// peer's two artifacts, detect what changed, bounce exactly the
// interfaces that need it.
package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dn42prov/internal/domain/peer"
	"dn42prov/internal/ports"
)

// Params carries everything one provisioning run needs.
type Params struct {
	Peers             []peer.Descriptor
	TunnelDir         string
	InterfacesDir     string
	TunnelTemplate    string
	InterfaceTemplate string
	SkipRestart       bool
}

// TunnelData is what the artifact templates see.
type TunnelData struct {
	Peer       peer.Descriptor
	PrivateKey string
	TunnelPath string
}

// Report is the user-visible outcome of a run: what was rendered, what
// was restarted and what failed, distinctly.
type Report struct {
	RunID            string
	Rendered         []string
	TunnelChanged    []string
	InterfaceChanged []string
	RestartSet       []string
	Restarted        []string
	RestartsSkipped  bool
	FailedRestarts   map[string]string
}

// Service implements the provisioning pass over injected ports.
type Service struct {
	syncer    ports.ArtifactSyncer
	restarter ports.InterfaceRestarter
	keys      ports.KeyGenerator
}

func NewService(syncer ports.ArtifactSyncer, restarter ports.InterfaceRestarter, keys ports.KeyGenerator) *Service {
	return &Service{syncer: syncer, restarter: restarter, keys: keys}
}

// Run processes the peers in declaration order. A render failure aborts
// the run; restart failures are recorded per peer and never block the
// remaining restarts.
func (s *Service) Run(ctx context.Context, p Params) (*Report, error) {
	report := &Report{
		RunID:          uuid.NewString(),
		FailedRestarts: make(map[string]string),
	}
	logger := log.With().Str("run_id", report.RunID).Logger()

	var tunnelResults, ifaceResults []peer.RenderResult
	for _, d := range p.Peers {
		if err := d.Validate(); err != nil {
			return report, err
		}
		tunnelPath := filepath.Join(p.TunnelDir, d.Name+".conf")
		priv, err := s.privateKeyFor(tunnelPath)
		if err != nil {
			return report, fmt.Errorf("peer %s: %w", d.Name, err)
		}
		data := TunnelData{Peer: d, PrivateKey: priv, TunnelPath: tunnelPath}

		tunnelChanged, err := s.renderArtifact(p.TunnelTemplate, data, tunnelPath, true)
		if err != nil {
			return report, fmt.Errorf("peer %s: tunnel: %w", d.Name, err)
		}
		tunnelResults = append(tunnelResults, peer.RenderResult{PeerName: d.Name, Changed: tunnelChanged})

		ifacePath := filepath.Join(p.InterfacesDir, d.InterfaceFileName())
		ifaceChanged, err := s.renderArtifact(p.InterfaceTemplate, data, ifacePath, false)
		if err != nil {
			return report, fmt.Errorf("peer %s: interface: %w", d.Name, err)
		}
		ifaceResults = append(ifaceResults, peer.RenderResult{PeerName: d.Name, Changed: ifaceChanged})

		report.Rendered = append(report.Rendered, d.Name)
		if tunnelChanged {
			report.TunnelChanged = append(report.TunnelChanged, d.Name)
		}
		if ifaceChanged {
			report.InterfaceChanged = append(report.InterfaceChanged, d.Name)
		}
		logger.Debug().Str("peer", d.Name).Bool("tunnel_changed", tunnelChanged).Bool("interface_changed", ifaceChanged).Msg("peer rendered")
	}

	report.RestartSet = peer.RestartSet(tunnelResults, ifaceResults)
	if p.SkipRestart {
		report.RestartsSkipped = true
		logger.Info().Strs("restart_set", report.RestartSet).Msg("restarts suppressed by skip_wg_restart")
		return report, nil
	}

	for _, name := range report.RestartSet {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}
		if err := s.restarter.Restart(ctx, name); err != nil {
			report.FailedRestarts[name] = err.Error()
			logger.Warn().Err(err).Str("interface", name).Msg("restart failed")
			continue
		}
		report.Restarted = append(report.Restarted, name)
		logger.Info().Str("interface", name).Msg("interface restarted")
	}
	return report, nil
}

// privateKeyFor reuses the private key already present in the tunnel
// file, generating one only for brand-new tunnels. Reuse keeps repeated
// runs idempotent.
func (s *Service) privateKeyFor(tunnelPath string) (string, error) {
	if existing, ok := s.syncer.Existing(tunnelPath); ok {
		if key := extractPrivateKey(existing); key != "" {
			return key, nil
		}
	}
	priv, _, err := s.keys.GenerateKeyPair()
	if err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return priv, nil
}

func (s *Service) renderArtifact(tmpl string, data TunnelData, path string, secret bool) (bool, error) {
	content, err := s.syncer.Render(tmpl, data)
	if err != nil {
		return false, err
	}
	return s.syncer.Sync(path, content, secret)
}

func extractPrivateKey(cfg string) string {
	for _, line := range strings.Split(cfg, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "PrivateKey =") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "PrivateKey ="))
		}
	}
	return ""
}

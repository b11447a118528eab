package ifupdown

import (
	"context"
	"testing"
)

func TestNewRunner(t *testing.T) {
	r := NewRunner("/etc/network/interfaces.d/dn42", false)
	if r.InterfacesFile != "/etc/network/interfaces.d/dn42" {
		t.Errorf("Unexpected interfaces file: %s", r.InterfacesFile)
	}
	if r.DryRun {
		t.Error("Expected DryRun to default to false")
	}
}

func TestRestartDryRun(t *testing.T) {
	r := NewRunner("/etc/network/interfaces.d/dn42", true)
	if err := r.Restart(context.Background(), "alpha"); err != nil {
		t.Errorf("Expected dry-run restart to succeed, got: %v", err)
	}
}

func TestRestartMissingToolReturnsError(t *testing.T) {
	// ifdown/ifup are not available in the test environment; the forced
	// down must be swallowed and the up failure surfaced.
	r := NewRunner("/nonexistent/interfaces", false)
	err := r.Restart(context.Background(), "alpha")
	if err == nil {
		t.Skip("ifup available on this host, skipping failure-path assertion")
	}
	t.Logf("Restart returned expected error: %v", err)
}

func TestRunCommand(t *testing.T) {
	r := NewRunner("", false)

	if err := r.run(context.Background(), "nonexistent-command", "arg1"); err == nil {
		t.Error("Expected error for nonexistent command")
	}
	if err := r.run(context.Background(), "true"); err != nil {
		t.Errorf("Expected no error for true, got: %v", err)
	}
}

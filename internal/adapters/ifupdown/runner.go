// Package ifupdown restarts provisioned tunnel interfaces through the
// system ifupdown tooling.
package ifupdown

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

const commandTimeout = 30 * time.Second

// Runner implements ports.InterfaceRestarter by shelling out to
// ifdown/ifup against a specific interfaces file.
type Runner struct {
	InterfacesFile string
	DryRun         bool
}

func NewRunner(interfacesFile string, dryRun bool) *Runner {
	return &Runner{InterfacesFile: interfacesFile, DryRun: dryRun}
}

// Restart takes the interface down and brings it back up. The down step
// is forced and its failure ignored: a never-configured interface has
// nothing to tear down. Errors never cascade to other interfaces; the
// caller records them and moves on.
func (r *Runner) Restart(ctx context.Context, name string) error {
	ifacesArg := fmt.Sprintf("--interfaces=%s", r.InterfacesFile)
	if r.DryRun {
		log.Info().Str("interface", name).Msg("dry-run: skipping ifdown/ifup")
		return nil
	}
	_ = r.run(ctx, "ifdown", "--force", ifacesArg, name) // ignore error
	return r.run(ctx, "ifup", ifacesArg, name)
}

func (r *Runner) run(ctx context.Context, cmd string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	c := exec.CommandContext(ctx, cmd, args...) // #nosec G204
	var out, errBuf bytes.Buffer
	c.Stdout = &out
	c.Stderr = &errBuf
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s %v failed: %v stderr=%s", cmd, args, err, errBuf.String())
	}
	return nil
}

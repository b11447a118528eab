package ports

import "context"

// ArtifactSyncer defines capability to render a template and sync the
// result to disk, reporting whether on-disk content actually changed.
type ArtifactSyncer interface {
	Render(tmpl string, data any) (string, error)
	Sync(path, content string, secret bool) (changed bool, err error)
	Existing(path string) (content string, ok bool)
}

// InterfaceRestarter defines capability to bounce one network interface.
type InterfaceRestarter interface {
	Restart(ctx context.Context, name string) error
}

// KeyGenerator defines capability to produce WireGuard key material.
type KeyGenerator interface {
	GenerateKeyPair() (privateKey, publicKey string, err error)
}

// ZoneServerPort defines capability to serve compiled zone data over DNS.
type ZoneServerPort interface {
	Start(addr string) error
}

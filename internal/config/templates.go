package config

// Built-in artifact templates. Both see a provision.TunnelData value:
// the peer descriptor, the tunnel private key and the tunnel config
// path. Deployments with different interface tooling override them
// inline in the config file.

// DefaultTunnelTemplate renders the per-peer WireGuard tunnel file,
// holding the tunnel secret. Point-to-point dn42 style: the peer may
// send anything, routing decides what we accept.
const DefaultTunnelTemplate = `[Interface]
PrivateKey = {{.PrivateKey}}
{{- if .Peer.Port}}
ListenPort = {{.Peer.Port}}
{{- end}}

[Peer]
PublicKey = {{.Peer.PublicKey}}
{{- if .Peer.Endpoint}}
Endpoint = {{.Peer.Endpoint}}
{{- end}}
AllowedIPs = 0.0.0.0/0, ::/0
{{- if .Peer.Keepalive}}
PersistentKeepalive = {{.Peer.Keepalive}}
{{- end}}
`

// DefaultInterfaceTemplate renders the ifupdown interface definition
// consumed by ifup/ifdown through --interfaces.
const DefaultInterfaceTemplate = `auto {{.Peer.Name}}
iface {{.Peer.Name}} inet manual
    pre-up ip link add $IFACE type wireguard
    pre-up wg setconf $IFACE {{.TunnelPath}}
{{- if .Peer.LocalV4}}
    post-up ip addr add {{.Peer.LocalV4}}{{if .Peer.PeerV4}} peer {{.Peer.PeerV4}}{{end}} dev $IFACE
{{- end}}
{{- if .Peer.LocalV6}}
    post-up ip -6 addr add {{.Peer.LocalV6}}{{if .Peer.PeerV6}} peer {{.Peer.PeerV6}}{{end}} dev $IFACE
{{- end}}
    post-up ip link set $IFACE up
    post-down ip link del $IFACE
`

package config

import "fmt"

// Tunnel represents one forwarding rule persisted in SQLite: traffic hitting
// the frontend port on this host is routed by Traefik to the backend.
// Runtime reachability is probed on demand, not stored.
type Tunnel struct {
	ID           string // Human-readable unique identifier, derived from the frontend port
	FrontendPort int
	BackendHost  string // IPv4, IPv6 or hostname
	BackendPort  int
}

// TunnelID derives the stable identifier for a frontend port.
func TunnelID(frontendPort int) string {
	return fmt.Sprintf("t%d", frontendPort)
}

// Backend returns the host:port target the tunnel forwards to.
func (t Tunnel) Backend() string {
	return fmt.Sprintf("%s:%d", t.BackendHost, t.BackendPort)
}

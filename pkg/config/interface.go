package config

import "errors"

// Sentinel error for a tunnel that is not in the store
var ErrTunnelNotFound = errors.New("tunnel not found")

// TunnelStoreInterface defines the interface for tunnel persistence
type TunnelStoreInterface interface {
	Add(t Tunnel) error
	GetAll() []Tunnel
	Len() int
	GetByFrontendPort(port int) (Tunnel, bool)
	Delete(frontendPort int) error
	Close() error
}

// NewTunnelStore creates a new tunnel store (defaults to SQLite at dbPath)
func NewTunnelStore(dbPath string) (TunnelStoreInterface, error) {
	return NewSQLiteTunnelStore(dbPath)
}

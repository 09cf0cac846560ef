package ui

import (
	"context"

	"github.com/mtaheri/trftun/pkg/config"
)

// UIState represents the different views/states of the UI
type UIState int

const (
	StateTunnels          UIState = iota // Tunnels table view
	StateAddTunnel                       // Add-tunnel form
	StatePortConfig                      // API port form
	StateConfirmUninstall                // y/N uninstall confirmation
)

// Add-tunnel form field indexes
const (
	FieldFrontendPort = iota
	FieldBackendHost
	FieldBackendPort
	fieldCount
)

// Controller is the slice of tunnel.Manager the UI drives.
type Controller interface {
	Install(ctx context.Context) error
	Uninstall() error
	Add(t config.Tunnel) error
	Remove(frontendPort int) error
	List() []config.Tunnel
	TunnelUp(t config.Tunnel) bool
	ServiceInstalled() bool
	ServiceActive() bool
	RestartService() error
	SetAPIPort(candidate string) (int, error)
	Close() error
}

package tunnel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/mtaheri/trftun/pkg/config"
	"github.com/mtaheri/trftun/pkg/logging"
	"github.com/mtaheri/trftun/pkg/systemd"
	"github.com/mtaheri/trftun/pkg/traefik"
)

// Sentinel error for frontend port conflict with a live listener
var ErrPortInUse = errors.New("frontend port already in use")

// Sentinel error for a frontend port that already has a tunnel
var ErrTunnelExists = errors.New("tunnel already exists for frontend port")

// probeTimeout bounds the per-tunnel reachability dial.
const probeTimeout = 500 * time.Millisecond

// Status describes the service unit and every configured tunnel.
type Status struct {
	UnitInstalled bool
	UnitActive    bool
	Tunnels       []TunnelStatus
}

// TunnelStatus pairs a tunnel with its probed frontend reachability.
type TunnelStatus struct {
	Tunnel config.Tunnel
	Up     bool
}

// Manager ties the tunnel registry, Traefik configuration and the systemd
// unit together. All mutations rewrite the dynamic config and nudge the
// service so Traefik picks the change up.
type Manager struct {
	store     config.TunnelStoreInterface
	sys       *systemd.Client
	installer *traefik.Installer
	configDir string
	portPath  string
}

// NewManager creates a Manager rooted at configDir. The API port file lives
// inside configDir.
func NewManager(store config.TunnelStoreInterface, sys *systemd.Client, installer *traefik.Installer, configDir string) *Manager {
	return &Manager{
		store:     store,
		sys:       sys,
		installer: installer,
		configDir: configDir,
		portPath:  filepath.Join(configDir, "api_port.conf"),
	}
}

// APIPortPath returns the path of the persisted API port file.
func (m *Manager) APIPortPath() string {
	return m.portPath
}

// APIPort returns the currently persisted API port, or the default.
func (m *Manager) APIPort() int {
	return config.LoadAPIPort(m.portPath)
}

// SetAPIPort validates and persists a new API port. When the service unit is
// installed, the static config is rewritten for the new port and a restart is
// issued; the restart is best-effort and never fails the port change.
func (m *Manager) SetAPIPort(candidate string) (int, error) {
	port, err := config.SaveAPIPort(m.portPath, candidate)
	if err != nil {
		return 0, err
	}

	if m.sys.Installed() {
		if err := traefik.WriteStaticConfig(m.configDir, traefik.DefaultEntryPort, port); err != nil {
			return port, fmt.Errorf("port saved, but failed to rewrite static config: %w", err)
		}
		m.restart()
	}

	return port, nil
}

// Install performs the full installation: Traefik binary, config files,
// systemd unit, then daemon-reload + enable + start. Idempotent; a second
// install rewrites configs and restarts the unit.
func (m *Manager) Install(ctx context.Context) error {
	if !systemd.Available() {
		return fmt.Errorf("systemctl not found in PATH; a systemd host is required")
	}
	if err := m.installer.EnsureBinary(ctx); err != nil {
		return err
	}

	if err := traefik.WriteStaticConfig(m.configDir, traefik.DefaultEntryPort, m.APIPort()); err != nil {
		return err
	}
	if err := traefik.WriteDynamicConfig(m.configDir, m.store.GetAll()); err != nil {
		return err
	}

	staticPath := filepath.Join(m.configDir, traefik.StaticConfigName)
	if err := m.sys.WriteUnit(m.installer.BinPath, staticPath); err != nil {
		return err
	}
	if err := m.sys.DaemonReload(); err != nil {
		return err
	}
	if err := m.sys.Enable(); err != nil {
		return err
	}
	if err := m.sys.Start(); err != nil {
		return err
	}

	logging.LogInfo("Tunnel service installed and started")
	return nil
}

// Uninstall stops and removes the unit and deletes the Traefik config
// directory (registry included). Stop/disable failures are tolerated; the
// unit may not be running.
func (m *Manager) Uninstall() error {
	if m.sys.Installed() {
		if err := m.sys.Stop(); err != nil {
			logging.LogError("Stop during uninstall failed: %v", err)
		}
		if err := m.sys.Disable(); err != nil {
			logging.LogError("Disable during uninstall failed: %v", err)
		}
	}

	if err := m.sys.RemoveUnit(); err != nil {
		return err
	}

	m.store.Close()
	if err := os.RemoveAll(m.configDir); err != nil {
		return fmt.Errorf("failed to remove config directory: %w", err)
	}

	if err := m.sys.DaemonReload(); err != nil {
		logging.LogError("daemon-reload during uninstall failed: %v", err)
	}

	logging.LogInfo("Tunnel service uninstalled")
	return nil
}

// Add validates and persists a new tunnel, then syncs Traefik.
func (m *Manager) Add(t config.Tunnel) error {
	if t.FrontendPort < 1 || t.FrontendPort > 65535 {
		return fmt.Errorf("invalid frontend port %d", t.FrontendPort)
	}
	if t.BackendHost == "" {
		return fmt.Errorf("backend host cannot be empty")
	}
	if t.BackendPort < 1 || t.BackendPort > 65535 {
		return fmt.Errorf("invalid backend port %d", t.BackendPort)
	}

	if _, exists := m.store.GetByFrontendPort(t.FrontendPort); exists {
		return fmt.Errorf("%w: %d", ErrTunnelExists, t.FrontendPort)
	}
	if !isPortAvailable(t.FrontendPort) {
		return fmt.Errorf("%w: %d", ErrPortInUse, t.FrontendPort)
	}

	t.ID = config.TunnelID(t.FrontendPort)
	if err := m.store.Add(t); err != nil {
		return err
	}

	return m.sync()
}

// Remove deletes the tunnel on frontendPort and syncs Traefik.
func (m *Manager) Remove(frontendPort int) error {
	if err := m.store.Delete(frontendPort); err != nil {
		return err
	}
	return m.sync()
}

// List returns all configured tunnels.
func (m *Manager) List() []config.Tunnel {
	return m.store.GetAll()
}

// TunnelUp probes whether the frontend port accepts connections.
func (m *Manager) TunnelUp(t config.Tunnel) bool {
	addr := fmt.Sprintf("localhost:%d", t.FrontendPort)
	conn, err := net.DialTimeout("tcp", addr, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Status reports the unit state and per-tunnel reachability.
func (m *Manager) Status() Status {
	st := Status{
		UnitInstalled: m.sys.Installed(),
		UnitActive:    m.sys.IsActive(),
	}
	for _, t := range m.store.GetAll() {
		st.Tunnels = append(st.Tunnels, TunnelStatus{Tunnel: t, Up: st.UnitActive && m.TunnelUp(t)})
	}
	return st
}

// ServiceInstalled reports whether the unit file is present.
func (m *Manager) ServiceInstalled() bool {
	return m.sys.Installed()
}

// ServiceActive reports whether the unit is running.
func (m *Manager) ServiceActive() bool {
	return m.sys.IsActive()
}

// ServiceStatus returns the captured systemctl status output.
func (m *Manager) ServiceStatus() (string, error) {
	return m.sys.Status()
}

// RestartService restarts the unit.
func (m *Manager) RestartService() error {
	return m.sys.Restart()
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// sync rewrites the dynamic config from the registry and nudges the service.
// The restart is best-effort: the registry is already consistent and the
// config file is what Traefik reads on its next start.
func (m *Manager) sync() error {
	if err := traefik.WriteDynamicConfig(m.configDir, m.store.GetAll()); err != nil {
		return err
	}
	m.restart()
	return nil
}

func (m *Manager) restart() {
	if !m.sys.Installed() {
		return
	}
	if err := m.sys.Restart(); err != nil {
		logging.LogError("Service restart failed: %v", err)
	}
}

// isPortAvailable checks if a TCP port is available to listen on localhost.
func isPortAvailable(port int) bool {
	address := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logging.LogDebug("Port check: Cannot listen on %s: %v", address, err)
		return false
	}
	_ = listener.Close()
	return true
}

package systemd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mtaheri/trftun/pkg/logging"
)

// UnitName is the systemd unit running Traefik for the tunnels.
const UnitName = "traefik-tunnel.service"

// DefaultUnitPath is where the unit file is installed.
const DefaultUnitPath = "/etc/systemd/system/" + UnitName

const unitTemplate = `[Unit]
Description=Traefik Tunnel Service
After=network.target

[Service]
ExecStart=%s --configFile=%s
Restart=always
User=root
StandardOutput=journal
StandardError=journal

[Install]
WantedBy=multi-user.target
`

// RunFunc executes systemctl with the given arguments and returns its
// combined output. Swappable for tests.
type RunFunc func(args ...string) ([]byte, error)

func runSystemctl(args ...string) ([]byte, error) {
	return exec.Command("systemctl", args...).CombinedOutput()
}

// Available reports whether systemctl can be found in PATH.
func Available() bool {
	_, err := exec.LookPath("systemctl")
	return err == nil
}

// Client manages the Traefik tunnel unit through systemctl.
type Client struct {
	UnitPath string
	Run      RunFunc
}

// NewClient returns a Client operating on the default unit path.
func NewClient() *Client {
	return &Client{
		UnitPath: DefaultUnitPath,
		Run:      runSystemctl,
	}
}

// RenderUnit produces the unit file contents for the given Traefik binary
// and static config file.
func RenderUnit(binPath, configFile string) string {
	return fmt.Sprintf(unitTemplate, binPath, configFile)
}

// WriteUnit installs the unit file.
func (c *Client) WriteUnit(binPath, configFile string) error {
	if err := os.WriteFile(c.UnitPath, []byte(RenderUnit(binPath, configFile)), 0644); err != nil {
		return fmt.Errorf("failed to write unit file: %w", err)
	}
	logging.LogInfo("Installed unit file at %s", c.UnitPath)
	return nil
}

// RemoveUnit deletes the unit file if present.
func (c *Client) RemoveUnit() error {
	err := os.Remove(c.UnitPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove unit file: %w", err)
	}
	return nil
}

// Installed reports whether the unit file exists on disk.
func (c *Client) Installed() bool {
	_, err := os.Stat(c.UnitPath)
	return err == nil
}

func (c *Client) systemctl(args ...string) error {
	out, err := c.Run(args...)
	if err != nil {
		logging.LogError("systemctl %s failed: %v (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
		return fmt.Errorf("systemctl %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

func (c *Client) DaemonReload() error { return c.systemctl("daemon-reload") }
func (c *Client) Enable() error       { return c.systemctl("enable", UnitName) }
func (c *Client) Disable() error      { return c.systemctl("disable", UnitName) }
func (c *Client) Start() error        { return c.systemctl("start", UnitName) }
func (c *Client) Stop() error         { return c.systemctl("stop", UnitName) }
func (c *Client) Restart() error      { return c.systemctl("restart", UnitName) }

// IsActive reports whether the unit is currently active.
func (c *Client) IsActive() bool {
	out, err := c.Run("is-active", UnitName)
	return err == nil && strings.TrimSpace(string(out)) == "active"
}

// Status returns the captured `systemctl status` output. A non-zero exit
// still carries useful output (inactive/failed units), so the text is
// returned either way.
func (c *Client) Status() (string, error) {
	out, err := c.Run("status", UnitName, "--no-pager")
	return string(out), err
}

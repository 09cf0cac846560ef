package systemd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records systemctl invocations and replays canned output.
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) run(args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	return []byte(f.output), f.err
}

func newTestClient(t *testing.T) (*Client, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{}
	return &Client{
		UnitPath: filepath.Join(t.TempDir(), UnitName),
		Run:      runner.run,
	}, runner
}

func TestRenderUnit(t *testing.T) {
	unit := RenderUnit("/usr/local/bin/traefik", "/etc/traefik/traefik.yml")
	assert.Contains(t, unit, "Description=Traefik Tunnel Service")
	assert.Contains(t, unit, "ExecStart=/usr/local/bin/traefik --configFile=/etc/traefik/traefik.yml")
	assert.Contains(t, unit, "Restart=always")
	assert.Contains(t, unit, "WantedBy=multi-user.target")
}

func TestWriteAndRemoveUnit(t *testing.T) {
	c, _ := newTestClient(t)

	assert.False(t, c.Installed())
	require.NoError(t, c.WriteUnit("/usr/local/bin/traefik", "/etc/traefik/traefik.yml"))
	assert.True(t, c.Installed())

	require.NoError(t, c.RemoveUnit())
	assert.False(t, c.Installed())

	// Removing an absent unit is not an error.
	require.NoError(t, c.RemoveUnit())
}

func TestSystemctlVerbs(t *testing.T) {
	c, runner := newTestClient(t)

	require.NoError(t, c.DaemonReload())
	require.NoError(t, c.Enable())
	require.NoError(t, c.Start())
	require.NoError(t, c.Restart())
	require.NoError(t, c.Stop())
	require.NoError(t, c.Disable())

	assert.Equal(t, [][]string{
		{"daemon-reload"},
		{"enable", UnitName},
		{"start", UnitName},
		{"restart", UnitName},
		{"stop", UnitName},
		{"disable", UnitName},
	}, runner.calls)
}

func TestIsActive(t *testing.T) {
	c, runner := newTestClient(t)

	runner.output = "active\n"
	assert.True(t, c.IsActive())

	runner.output = "inactive\n"
	assert.False(t, c.IsActive())

	runner.output = "inactive\n"
	runner.err = assert.AnError
	assert.False(t, c.IsActive())
}

func TestStatusReturnsOutput(t *testing.T) {
	c, runner := newTestClient(t)
	runner.output = "● traefik-tunnel.service - Traefik Tunnel Service\n   Active: active (running)\n"

	out, err := c.Status()
	require.NoError(t, err)
	assert.Contains(t, out, "Active: active (running)")
	assert.Equal(t, [][]string{{"status", UnitName, "--no-pager"}}, runner.calls)
}

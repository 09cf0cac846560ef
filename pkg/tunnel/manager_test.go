package tunnel

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/mtaheri/trftun/pkg/config"
	"github.com/mtaheri/trftun/pkg/systemd"
	"github.com/mtaheri/trftun/pkg/traefik"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records systemctl invocations.
type fakeRunner struct {
	calls [][]string
}

func (f *fakeRunner) run(args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	return nil, nil
}

func (f *fakeRunner) sawVerb(verb string) bool {
	for _, call := range f.calls {
		if len(call) > 0 && call[0] == verb {
			return true
		}
	}
	return false
}

func newTestManager(t *testing.T) (*Manager, *fakeRunner, string) {
	t.Helper()

	configDir := t.TempDir()
	store, err := config.NewTunnelStore(filepath.Join(configDir, "trftun.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	runner := &fakeRunner{}
	sys := &systemd.Client{
		UnitPath: filepath.Join(t.TempDir(), systemd.UnitName),
		Run:      runner.run,
	}

	mgr := NewManager(store, sys, traefik.NewInstaller(), configDir)
	return mgr, runner, configDir
}

func testTunnel(frontendPort int) config.Tunnel {
	return config.Tunnel{
		FrontendPort: frontendPort,
		BackendHost:  "192.168.1.100",
		BackendPort:  80,
	}
}

// freePort grabs an ephemeral port that nothing is listening on.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func TestAddAndListTunnels(t *testing.T) {
	mgr, _, configDir := newTestManager(t)

	port := freePort(t)
	require.NoError(t, mgr.Add(testTunnel(port)))

	tunnels := mgr.List()
	require.Len(t, tunnels, 1)
	assert.Equal(t, config.TunnelID(port), tunnels[0].ID)

	// Adding must rewrite the dynamic config.
	data, err := os.ReadFile(filepath.Join(configDir, traefik.DynamicConfigName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://192.168.1.100:80")
}

func TestAddRejectsDuplicateFrontendPort(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	port := freePort(t)
	require.NoError(t, mgr.Add(testTunnel(port)))

	err := mgr.Add(testTunnel(port))
	assert.ErrorIs(t, err, ErrTunnelExists)
	assert.Len(t, mgr.List(), 1)
}

func TestAddRejectsActiveFrontendPort(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	err = mgr.Add(testTunnel(port))
	assert.ErrorIs(t, err, ErrPortInUse)
	assert.Empty(t, mgr.List())
}

func TestAddValidation(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	badTunnels := []config.Tunnel{
		{FrontendPort: 0, BackendHost: "h", BackendPort: 80},
		{FrontendPort: 70000, BackendHost: "h", BackendPort: 80},
		{FrontendPort: freePort(t), BackendHost: "", BackendPort: 80},
		{FrontendPort: freePort(t), BackendHost: "h", BackendPort: 0},
	}
	for _, bad := range badTunnels {
		assert.Error(t, mgr.Add(bad), "tunnel %+v", bad)
	}
	assert.Empty(t, mgr.List())
}

func TestRemoveMissingTunnel(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	err := mgr.Remove(12345)
	assert.ErrorIs(t, err, config.ErrTunnelNotFound)
}

func TestRemoveRewritesDynamicConfig(t *testing.T) {
	mgr, _, configDir := newTestManager(t)

	port := freePort(t)
	require.NoError(t, mgr.Add(testTunnel(port)))
	require.NoError(t, mgr.Remove(port))

	assert.Empty(t, mgr.List())
	data, err := os.ReadFile(filepath.Join(configDir, traefik.DynamicConfigName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "http://192.168.1.100:80")
}

func TestSetAPIPortWithoutService(t *testing.T) {
	mgr, runner, _ := newTestManager(t)

	port, err := mgr.SetAPIPort("9090")
	require.NoError(t, err)
	assert.Equal(t, 9090, port)
	assert.Equal(t, 9090, mgr.APIPort())

	// Unit not installed: no restart may be issued.
	assert.False(t, runner.sawVerb("restart"))
}

func TestSetAPIPortRejectsInvalidCandidate(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	_, err := mgr.SetAPIPort("9090")
	require.NoError(t, err)

	_, err = mgr.SetAPIPort("not-a-port")
	assert.ErrorIs(t, err, config.ErrInvalidPort)
	assert.Equal(t, 9090, mgr.APIPort(), "rejected candidate must not change the persisted port")
}

func TestSetAPIPortRestartsInstalledService(t *testing.T) {
	mgr, runner, configDir := newTestManager(t)

	// Install the unit file so the restart path triggers.
	require.NoError(t, mgr.sys.WriteUnit("/usr/local/bin/traefik", filepath.Join(configDir, traefik.StaticConfigName)))

	port, err := mgr.SetAPIPort("2020")
	require.NoError(t, err)
	assert.Equal(t, 2020, port)
	assert.True(t, runner.sawVerb("restart"))

	// The static config is rewritten for the new port.
	data, err := os.ReadFile(filepath.Join(configDir, traefik.StaticConfigName))
	require.NoError(t, err)
	assert.Contains(t, string(data), ":2020")
}

func TestUninstallRemovesEverything(t *testing.T) {
	mgr, runner, configDir := newTestManager(t)

	sys := mgr.sys
	require.NoError(t, sys.WriteUnit("/usr/local/bin/traefik", filepath.Join(configDir, traefik.StaticConfigName)))

	require.NoError(t, mgr.Uninstall())

	assert.False(t, sys.Installed())
	_, err := os.Stat(configDir)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, runner.sawVerb("stop"))
	assert.True(t, runner.sawVerb("disable"))
	assert.True(t, runner.sawVerb("daemon-reload"))
}

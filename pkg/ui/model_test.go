package ui

import (
	"context"
	"testing"

	"github.com/mtaheri/trftun/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeController records which manager operations the UI invokes.
type fakeController struct {
	tunnels         []config.Tunnel
	installed       bool
	active          bool
	installCalled   bool
	uninstallCalled bool
	restartCalled   bool
	removedPorts    []int
	portCandidates  []string
	setPortResult   int
	setPortErr      error
	closed          bool
}

func (f *fakeController) Install(ctx context.Context) error {
	f.installCalled = true
	return nil
}

func (f *fakeController) Uninstall() error {
	f.uninstallCalled = true
	return nil
}

func (f *fakeController) Add(t config.Tunnel) error {
	f.tunnels = append(f.tunnels, t)
	return nil
}

func (f *fakeController) Remove(frontendPort int) error {
	f.removedPorts = append(f.removedPorts, frontendPort)
	return nil
}

func (f *fakeController) List() []config.Tunnel        { return f.tunnels }
func (f *fakeController) TunnelUp(config.Tunnel) bool  { return false }
func (f *fakeController) ServiceInstalled() bool       { return f.installed }
func (f *fakeController) ServiceActive() bool          { return f.active }
func (f *fakeController) RestartService() error        { f.restartCalled = true; return nil }
func (f *fakeController) Close() error                 { f.closed = true; return nil }

func (f *fakeController) SetAPIPort(candidate string) (int, error) {
	f.portCandidates = append(f.portCandidates, candidate)
	if f.setPortErr != nil {
		return 0, f.setPortErr
	}
	return f.setPortResult, nil
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, s string) {
	t.Helper()
	updated, _ := m.Update(keyMsg(s))
	require.Same(t, m, updated)
}

func TestUninstallDeclinedDoesNotInvoke(t *testing.T) {
	for _, decline := range []string{"n", "N", "x", "q", "1"} {
		fake := &fakeController{installed: true}
		m := NewModel(fake, config.DefaultAPIPort)

		press(t, m, ShortcutUninstall)
		assert.Equal(t, StateConfirmUninstall, m.uiState)

		press(t, m, decline)
		assert.False(t, fake.uninstallCalled, "declining with %q must not uninstall", decline)
		assert.Equal(t, StateTunnels, m.uiState)
	}
}

func TestUninstallConfirmedInvokes(t *testing.T) {
	for _, confirm := range []string{"y", "Y"} {
		fake := &fakeController{installed: true}
		m := NewModel(fake, config.DefaultAPIPort)

		press(t, m, ShortcutUninstall)
		press(t, m, confirm)
		assert.True(t, fake.uninstallCalled, "confirming with %q must uninstall", confirm)
		assert.Equal(t, StateTunnels, m.uiState)
	}
}

func TestUnknownKeyKeepsTunnelView(t *testing.T) {
	fake := &fakeController{}
	m := NewModel(fake, config.DefaultAPIPort)

	press(t, m, "9")
	assert.Equal(t, StateTunnels, m.uiState)
	assert.False(t, fake.installCalled)
	assert.False(t, fake.uninstallCalled)
	assert.False(t, fake.restartCalled)
	assert.Empty(t, fake.removedPorts)
}

func TestInvalidPortFallsBackToDefault(t *testing.T) {
	fake := &fakeController{setPortErr: config.ErrInvalidPort}
	m := NewModel(fake, 9090)

	press(t, m, ShortcutPort)
	require.Equal(t, StatePortConfig, m.uiState)

	m.portInput.SetValue("70000")
	press(t, m, "enter")

	assert.Equal(t, []string{"70000"}, fake.portCandidates)
	assert.Equal(t, config.DefaultAPIPort, m.APIPort(), "rejected candidate drops the session port to the default")
	assert.NotEmpty(t, m.errorMsg)
	assert.Equal(t, StateTunnels, m.uiState)
}

func TestValidPortUpdatesSession(t *testing.T) {
	fake := &fakeController{setPortResult: 9090}
	m := NewModel(fake, config.DefaultAPIPort)

	press(t, m, ShortcutPort)
	m.portInput.SetValue("9090")
	press(t, m, "enter")

	assert.Equal(t, 9090, m.APIPort())
	assert.Empty(t, m.errorMsg)
	assert.Equal(t, StateTunnels, m.uiState)
}

func TestInterruptQuitsFromAnyState(t *testing.T) {
	fake := &fakeController{}
	m := NewModel(fake, config.DefaultAPIPort)

	press(t, m, ShortcutUninstall)
	require.Equal(t, StateConfirmUninstall, m.uiState)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, fake.uninstallCalled)

	m.Cleanup()
	assert.True(t, fake.closed)
}

func TestAddTunnelFormCommit(t *testing.T) {
	fake := &fakeController{}
	m := NewModel(fake, config.DefaultAPIPort)

	press(t, m, ShortcutAdd)
	require.Equal(t, StateAddTunnel, m.uiState)

	m.formInputs[FieldFrontendPort].SetValue("8443")
	m.formInputs[FieldBackendHost].SetValue("192.168.1.100")
	m.formInputs[FieldBackendPort].SetValue("80")
	m.formFocus = FieldBackendPort
	press(t, m, "enter")

	require.Len(t, fake.tunnels, 1)
	assert.Equal(t, 8443, fake.tunnels[0].FrontendPort)
	assert.Equal(t, "192.168.1.100:80", fake.tunnels[0].Backend())
	assert.Equal(t, StateTunnels, m.uiState)
}

func TestDeleteSelectedTunnel(t *testing.T) {
	fake := &fakeController{tunnels: []config.Tunnel{
		{ID: "t8443", FrontendPort: 8443, BackendHost: "h", BackendPort: 80},
	}}
	m := NewModel(fake, config.DefaultAPIPort)

	press(t, m, ShortcutDelete)
	assert.Equal(t, []int{8443}, fake.removedPorts)
}

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mtaheri/trftun/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
)

// updateAddTunnel handles the add-tunnel form
func (m *Model) updateAddTunnel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.exitForm()
		return m, nil

	case "tab", "down":
		m.moveFormFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.moveFormFocus(-1)
		return m, nil

	case "enter":
		if m.formFocus < fieldCount-1 {
			m.moveFormFocus(1)
			return m, nil
		}
		return m.commitAddTunnel()

	default:
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
		return m, cmd
	}
}

func (m *Model) moveFormFocus(delta int) {
	m.formInputs[m.formFocus].Blur()
	m.formFocus = (m.formFocus + delta + fieldCount) % fieldCount
	m.formInputs[m.formFocus].Focus()
}

func (m *Model) exitForm() {
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	m.portInput.Blur()
	m.tunnelsTable.Focus()
	m.uiState = StateTunnels
}

// commitAddTunnel validates the form and adds the tunnel
func (m *Model) commitAddTunnel() (tea.Model, tea.Cmd) {
	frontendStr := strings.TrimSpace(m.formInputs[FieldFrontendPort].Value())
	backendHost := strings.TrimSpace(m.formInputs[FieldBackendHost].Value())
	backendStr := strings.TrimSpace(m.formInputs[FieldBackendPort].Value())

	frontendPort, err := strconv.Atoi(frontendStr)
	if err != nil {
		m.errorMsg = "Frontend port must be a number"
		return m, nil
	}
	backendPort, err := strconv.Atoi(backendStr)
	if err != nil {
		m.errorMsg = "Backend port must be a number"
		return m, nil
	}

	t := config.Tunnel{
		FrontendPort: frontendPort,
		BackendHost:  backendHost,
		BackendPort:  backendPort,
	}
	if err := m.ctrl.Add(t); err != nil {
		m.errorMsg = fmt.Sprintf("Cannot add tunnel: %v", err)
		return m, nil
	}

	m.clearMessages()
	m.statusMsg = fmt.Sprintf("Added tunnel %d -> %s", frontendPort, t.Backend())
	m.exitForm()
	m.refreshTable()
	return m, nil
}

// updatePortConfig handles the API port form
func (m *Model) updatePortConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.exitForm()
		return m, nil

	case "enter":
		return m.commitPortConfig()

	default:
		m.portInput, cmd = m.portInput.Update(msg)
		return m, cmd
	}
}

// commitPortConfig persists the candidate port. A rejected candidate leaves
// the file untouched and drops the session back to the default port.
func (m *Model) commitPortConfig() (tea.Model, tea.Cmd) {
	m.clearMessages()
	candidate := strings.TrimSpace(m.portInput.Value())

	port, err := m.ctrl.SetAPIPort(candidate)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Invalid port %q: must match ^[0-9]+$ and lie in [%d, %d]",
			candidate, config.MinAPIPort, config.MaxAPIPort)
		m.apiPort = config.DefaultAPIPort
		m.exitForm()
		return m, nil
	}

	m.apiPort = port
	if m.ctrl.ServiceInstalled() {
		m.statusMsg = fmt.Sprintf("API port set to %d, service restart requested", port)
	} else {
		m.statusMsg = fmt.Sprintf("API port set to %d", port)
	}
	m.exitForm()
	return m, nil
}

package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// updateTunnels handles updates for StateTunnels
func (m *Model) updateTunnels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case ShortcutQuit:
		return m, tea.Quit

	case ShortcutAdd:
		m.clearMessages()
		for i := range m.formInputs {
			m.formInputs[i].SetValue("")
			m.formInputs[i].Blur()
		}
		m.formFocus = FieldFrontendPort
		m.formInputs[m.formFocus].Focus()
		m.tunnelsTable.Blur()
		m.uiState = StateAddTunnel
		return m, nil

	case ShortcutDelete:
		m.clearMessages()
		t, err := m.selectedTunnel()
		if err != nil {
			m.errorMsg = fmt.Sprintf("Cannot delete: %v", err)
			return m, nil
		}
		if err := m.ctrl.Remove(t.FrontendPort); err != nil {
			m.errorMsg = fmt.Sprintf("Error deleting tunnel %d: %v", t.FrontendPort, err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted tunnel on port %d", t.FrontendPort)
		m.refreshTable()
		return m, nil

	case ShortcutInstall:
		m.clearMessages()
		if err := m.ctrl.Install(context.Background()); err != nil {
			m.errorMsg = fmt.Sprintf("Install failed: %v", err)
			return m, nil
		}
		m.statusMsg = "Tunnel service installed and started"
		m.refreshTable()
		return m, nil

	case ShortcutStatus:
		m.clearMessages()
		if !m.ctrl.ServiceInstalled() {
			m.statusMsg = "Service: not installed"
		} else if m.ctrl.ServiceActive() {
			m.statusMsg = "Service: active"
		} else {
			m.statusMsg = "Service: installed, not running"
		}
		m.refreshTable()
		return m, nil

	case ShortcutRestart:
		m.clearMessages()
		if !m.ctrl.ServiceInstalled() {
			m.errorMsg = "Service is not installed"
			return m, nil
		}
		if err := m.ctrl.RestartService(); err != nil {
			m.errorMsg = fmt.Sprintf("Restart failed: %v", err)
			return m, nil
		}
		m.statusMsg = "Service restarted"
		m.refreshTable()
		return m, nil

	case ShortcutPort:
		m.clearMessages()
		m.portInput.SetValue(fmt.Sprintf("%d", m.apiPort))
		m.portInput.Focus()
		m.tunnelsTable.Blur()
		m.uiState = StatePortConfig
		return m, nil

	case ShortcutUninstall:
		m.clearMessages()
		m.uiState = StateConfirmUninstall
		return m, nil

	// Keys not handled above go to the table (navigation); anything else
	// just redraws the same view.
	default:
		m.tunnelsTable, cmd = m.tunnelsTable.Update(msg)
		return m, cmd
	}
}

// updateConfirmUninstall handles the y/N confirmation. Only an explicit y/Y
// triggers the uninstall; every other key cancels.
func (m *Model) updateConfirmUninstall(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.uiState = StateTunnels
		m.tunnelsTable.Focus()
		if err := m.ctrl.Uninstall(); err != nil {
			m.errorMsg = fmt.Sprintf("Uninstall failed: %v", err)
			return m, nil
		}
		m.statusMsg = "Tunnel service uninstalled"
		m.refreshTable()
		return m, nil
	default:
		m.uiState = StateTunnels
		m.tunnelsTable.Focus()
		m.statusMsg = "Uninstall cancelled"
		return m, nil
	}
}

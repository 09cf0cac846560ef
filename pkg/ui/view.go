package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m *Model) View() string {
	switch m.uiState {
	case StateTunnels:
		return m.viewTunnels()
	case StateAddTunnel:
		return m.renderAddTunnel()
	case StatePortConfig:
		return m.renderPortConfig()
	case StateConfirmUninstall:
		return m.renderConfirmUninstall()
	}
	return "Unknown state"
}

// viewTunnels renders the main tunnel list view
func (m *Model) viewTunnels() string {
	titleText := fmt.Sprintf("Traefik Tunnels - API Port %d", m.apiPort)
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true).Render(titleText)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	helpText := helpStyle.Render(ActionTunnelNav)

	tableView := lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.tunnelsTable.View())

	// Format top area: title plus help when there is room
	var top string
	if m.width >= 100 {
		spacing := m.width - lipgloss.Width(title) - lipgloss.Width(helpText)
		if spacing > 0 {
			top = lipgloss.JoinHorizontal(lipgloss.Left, title, strings.Repeat(" ", spacing), helpText)
		} else {
			top = title
		}
	} else {
		top = title
	}

	var bottom string
	if m.width < 100 {
		bottom = helpText
	}

	var messageText string
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		messageText = errorStyle.Render(fmt.Sprintf("ERROR: %s", m.errorMsg))
	} else if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOK))
		messageText = statusStyle.Render(m.statusMsg)
	}

	parts := []string{top, "", tableView}
	if messageText != "" {
		parts = append(parts, messageText)
	}
	if bottom != "" {
		parts = append(parts, bottom)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

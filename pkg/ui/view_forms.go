package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var formLabels = [fieldCount]string{
	FieldFrontendPort: "Frontend port",
	FieldBackendHost:  "Backend host",
	FieldBackendPort:  "Backend port",
}

// renderAddTunnel renders the add-tunnel form
func (m *Model) renderAddTunnel() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorTitle)).
		Bold(true).
		Padding(0, 1)

	b.WriteString(titleStyle.Render("Add Tunnel"))
	b.WriteString("\n\n")

	for i, input := range m.formInputs {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", formLabels[i]+":", input.View()))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	b.WriteString(helpStyle.Render(ActionForm))
	b.WriteString("\n")

	m.appendMessage(&b)
	return b.String()
}

// renderPortConfig renders the API port form
func (m *Model) renderPortConfig() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorTitle)).
		Bold(true).
		Padding(0, 1)

	b.WriteString(titleStyle.Render("Configure API Port"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  API port [1024-65535]: %s\n\n", m.portInput.View()))

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	b.WriteString(helpStyle.Render(ActionPortForm))
	b.WriteString("\n")

	m.appendMessage(&b)
	return b.String()
}

// renderConfirmUninstall renders the uninstall confirmation prompt
func (m *Model) renderConfirmUninstall() string {
	var b strings.Builder

	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarn)).
		Bold(true).
		Padding(1, 1)

	b.WriteString(promptStyle.Render(ActionConfirmMsg))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	b.WriteString(helpStyle.Render("y: Uninstall | any other key: Cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) appendMessage(b *strings.Builder) {
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.errorMsg)))
		b.WriteString("\n")
	} else if m.statusMsg != "" {
		b.WriteString(m.statusMsg)
		b.WriteString("\n")
	}
}

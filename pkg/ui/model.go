package ui

import (
	"github.com/mtaheri/trftun/pkg/logging"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the state of the UI
type Model struct {
	uiState UIState

	// Core components
	ctrl    Controller
	apiPort int
	width   int
	height  int

	// Central error message
	errorMsg string
	// Status/info message (non-error feedback)
	statusMsg string

	// Tunnels table
	tunnelsTable table.Model

	// Add-tunnel form
	formInputs []textinput.Model
	formFocus  int

	// API port form
	portInput textinput.Model
}

// calculateColumnWidths returns column widths based on terminal width
func (m *Model) calculateColumnWidths() []table.Column {
	minWidths := map[string]int{
		ColFrontend: 8, // "FRONTEND"
		ColBackend:  20,
		ColStatus:   6, // "STATUS"
	}

	availableWidth := m.width - 10
	availableWidth = max(availableWidth, 40)

	totalMinWidth := 0
	for _, width := range minWidths {
		totalMinWidth += width
	}

	// Any extra space goes to the backend column; hosts are the long field.
	extraSpace := max(availableWidth-totalMinWidth, 0)
	minWidths[ColBackend] += extraSpace

	return []table.Column{
		{Title: ColFrontend, Width: minWidths[ColFrontend]},
		{Title: ColBackend, Width: minWidths[ColBackend]},
		{Title: ColStatus, Width: minWidths[ColStatus]},
	}
}

// NewModel builds the UI around a controller and the API port loaded at
// startup.
func NewModel(ctrl Controller, apiPort int) *Model {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorSelectedFg)).
		Background(lipgloss.Color(ColorSelectedBg)).
		Bold(false)

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = 24
		inputs[i] = ti
	}
	inputs[FieldFrontendPort].Placeholder = "e.g. 8443"
	inputs[FieldBackendHost].Placeholder = "e.g. 192.168.1.100"
	inputs[FieldBackendPort].Placeholder = "e.g. 80"

	pi := textinput.New()
	pi.CharLimit = 5
	pi.Width = 10

	m := &Model{
		uiState:    StateTunnels,
		ctrl:       ctrl,
		apiPort:    apiPort,
		width:      80, // Default, updated on first WindowSizeMsg
		height:     24,
		formInputs: inputs,
		portInput:  pi,
	}

	cols := m.calculateColumnWidths()
	tunnelsTable := table.New(
		table.WithColumns(cols),
		table.WithRows(m.generateTunnelRows()),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(s),
	)
	m.tunnelsTable = tunnelsTable

	logging.LogDebug("NewModel: %d tunnels loaded, API port %d", len(ctrl.List()), apiPort)
	return m
}

// APIPort returns the port currently active for this session.
func (m *Model) APIPort() int {
	return m.apiPort
}

// Cleanup releases the controller on the way out.
func (m *Model) Cleanup() {
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		tableHeight := m.height - TunnelViewOffset
		if tableHeight < MinTableHeight {
			tableHeight = MinTableHeight
		}
		m.tunnelsTable.SetHeight(tableHeight)
		m.tunnelsTable.SetColumns(m.calculateColumnWidths())
		return m, nil

	case tea.KeyMsg:
		// Interrupt works in any state and is a graceful exit.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.uiState {
		case StateTunnels:
			return m.updateTunnels(msg)
		case StateAddTunnel:
			return m.updateAddTunnel(msg)
		case StatePortConfig:
			return m.updatePortConfig(msg)
		case StateConfirmUninstall:
			return m.updateConfirmUninstall(msg)
		}
	}

	return m, nil
}

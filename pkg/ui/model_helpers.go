package ui

import (
	"fmt"

	"github.com/mtaheri/trftun/pkg/config"

	"github.com/charmbracelet/bubbles/table"
)

// generateTunnelRows converts the registry to table.Row slice. Reachability
// is only probed while the service is active; a stopped service means every
// tunnel is down.
func (m *Model) generateTunnelRows() []table.Row {
	tunnels := m.ctrl.List()
	serviceActive := m.ctrl.ServiceActive()

	rows := make([]table.Row, 0, len(tunnels))
	for _, t := range tunnels {
		statusText := StatusDown
		if serviceActive && m.ctrl.TunnelUp(t) {
			statusText = StatusUp
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", t.FrontendPort),
			t.Backend(),
			statusText,
		})
	}
	return rows
}

// refreshTable regenerates the tunnels table rows.
func (m *Model) refreshTable() {
	m.tunnelsTable.SetRows(m.generateTunnelRows())
}

// selectedTunnel resolves the highlighted table row to its tunnel.
func (m *Model) selectedTunnel() (config.Tunnel, error) {
	idx := m.tunnelsTable.Cursor()
	tunnels := m.ctrl.List()
	if idx < 0 || idx >= len(tunnels) {
		return config.Tunnel{}, fmt.Errorf("no tunnel selected")
	}
	return tunnels[idx], nil
}

// clearMessages resets the error and status lines.
func (m *Model) clearMessages() {
	m.errorMsg = ""
	m.statusMsg = ""
}

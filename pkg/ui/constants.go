package ui

// Table Column Titles
const (
	ColFrontend = "FRONTEND"
	ColBackend  = "BACKEND"
	ColStatus   = "STATUS"
)

// Action Lines / Key Hints
const (
	ActionTunnelNav  = "a: Add | d: Delete | i: Install Service | s: Status | r: Restart | p: API Port | u: Uninstall | q: Quit"
	ActionForm       = "tab/↑/↓: Move | enter: Save | esc: Cancel"
	ActionPortForm   = "enter: Save | esc: Cancel"
	ActionConfirmMsg = "Uninstall the tunnel service and remove all configuration? [y/N]"
)

// Keyboard shortcuts
const (
	ShortcutAdd       = "a"
	ShortcutDelete    = "d"
	ShortcutInstall   = "i"
	ShortcutStatus    = "s"
	ShortcutRestart   = "r"
	ShortcutPort      = "p"
	ShortcutUninstall = "u"
	ShortcutQuit      = "q"
)

// Numeric Constants for Layout
const (
	MinTableHeight   = 4 // Minimum height for the tunnels table
	TunnelViewOffset = 7 // Estimated non-table lines in the tunnels view for height calc
)

// Status Strings - display-only, never persisted
const (
	StatusUp   = "Up"
	StatusDown = "Down"
)

// Lipgloss Colors
const (
	ColorBorder     = "240"
	ColorSelectedFg = "229"
	ColorSelectedBg = "57"
	ColorTitle      = "14"  // Cyan for titles
	ColorHelp       = "245" // Grey for help text
	ColorError      = "9"   // Red for errors
	ColorOK         = "10"  // Green for status messages
	ColorWarn       = "11"  // Yellow for prompts
)

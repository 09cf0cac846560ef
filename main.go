package main

import (
	"fmt"
	"os"

	"github.com/mtaheri/trftun/pkg/cmd"
	"github.com/mtaheri/trftun/pkg/config"
	"github.com/mtaheri/trftun/pkg/logging"
	"github.com/mtaheri/trftun/pkg/systemd"
	"github.com/mtaheri/trftun/pkg/traefik"
	"github.com/mtaheri/trftun/pkg/tunnel"
	"github.com/mtaheri/trftun/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	logging.LogDebug("Logger test: main started")

	// Parse command line arguments
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "install":
			cmd.HandleInstallCommand()
			return
		case "uninstall":
			cmd.HandleUninstallCommand()
			return
		case "list":
			cmd.HandleListCommand()
			return
		case "status":
			cmd.HandleStatusCommand()
			return
		case "port":
			cmd.HandlePortCommand()
			return
		case "help", "-h", "--help":
			cmd.ShowMainHelpAndExit()
			return
		default:
			fmt.Printf("Unknown command: %s\n\n", os.Args[1])
			cmd.HandleHelpCommand()
			os.Exit(1)
		}
	}

	// Default behavior - start TUI
	store, err := config.NewTunnelStore(config.DefaultDBPath)
	if err != nil {
		fmt.Printf("Error opening tunnel store: %v\n", err)
		os.Exit(1)
	}

	mgr := tunnel.NewManager(store, systemd.NewClient(), traefik.NewInstaller(), traefik.DefaultConfigDir)
	model := ui.NewModel(mgr, mgr.APIPort())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		model.Cleanup()
		os.Exit(1)
	}
	model.Cleanup()
}

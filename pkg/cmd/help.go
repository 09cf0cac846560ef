package cmd

import (
	"fmt"
	"os"
)

// HandleHelpCommand displays help information for the application
func HandleHelpCommand() {
	showMainHelp()
}

// showMainHelp displays the main application help
func showMainHelp() {
	programName := os.Args[0]
	fmt.Printf(`trftun - Traefik Tunnel Manager

A terminal-based UI application for managing TCP tunnels fronted by a local
Traefik instance, with systemd service integration.

Usage:
  %s [command]

Available Commands:
  install    Install Traefik, write configuration and start the service
  uninstall  Stop the service and remove all configuration
  list       Show configured tunnels
  status     Show service and tunnel status
  port       Show or set the API port
  help       Show help information

Options:
  -h, --help  Show help information

Interactive Mode:
  Run without any command to start the interactive TUI where you can:
  - Add and delete tunnels with 'a' and 'd'
  - Install or uninstall the service with 'i' and 'u'
  - Configure the API port with 'p'
  - Restart the service with 'r'

Examples:
  %s                 Start interactive TUI
  sudo %s install    Install and start the tunnel service
  %s list            Show configured tunnels
  %s port 9090       Set the API port

For more information about a specific command, use:
  %s <command> --help
`, programName, programName, programName, programName, programName, programName)
}

// ShowMainHelpAndExit displays help and exits with code 0
func ShowMainHelpAndExit() {
	showMainHelp()
	os.Exit(0)
}

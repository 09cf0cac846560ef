package cmd

import (
	"context"
	"fmt"
	"os"
)

// HandleInstallCommand installs Traefik, writes the tunnel configuration and
// starts the systemd unit.
func HandleInstallCommand() {
	if hasHelpFlag() {
		showInstallHelp()
		os.Exit(0)
	}

	requireRoot("install")

	mgr, err := newManager()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	if err := mgr.Install(context.Background()); err != nil {
		fmt.Printf("Error installing tunnel service: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Tunnel service installed and started (API port %d).\n", mgr.APIPort())
}

// showInstallHelp displays help for the install command
func showInstallHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s install - Install the Traefik tunnel service

Downloads the pinned Traefik release if it is not already present, writes the
static and dynamic configuration under /etc/traefik, installs the
traefik-tunnel.service systemd unit, then enables and starts it.

Usage:
  sudo %s install

Installation is idempotent: re-running rewrites the configuration files and
restarts the service.
`, programName, programName)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/mtaheri/trftun/pkg/config"
	"github.com/mtaheri/trftun/pkg/systemd"
	"github.com/mtaheri/trftun/pkg/traefik"
	"github.com/mtaheri/trftun/pkg/tunnel"
)

// newManager wires the default store, systemd client and installer together.
func newManager() (*tunnel.Manager, error) {
	store, err := config.NewTunnelStore(config.DefaultDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening tunnel store: %w", err)
	}
	return tunnel.NewManager(store, systemd.NewClient(), traefik.NewInstaller(), traefik.DefaultConfigDir), nil
}

// requireRoot exits when the command needs privileges it does not have.
func requireRoot(command string) {
	if os.Getuid() != 0 {
		fmt.Fprintf(os.Stderr, "%s must be run as root (try: sudo %s %s)\n", command, os.Args[0], command)
		os.Exit(1)
	}
}

// hasHelpFlag scans the subcommand arguments for -h/--help.
func hasHelpFlag() bool {
	if len(os.Args) > 2 {
		for _, arg := range os.Args[2:] {
			if arg == "-h" || arg == "--help" {
				return true
			}
		}
	}
	return false
}

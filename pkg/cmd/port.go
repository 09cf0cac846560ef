package cmd

import (
	"fmt"
	"os"

	"github.com/mtaheri/trftun/pkg/config"
)

// HandlePortCommand prints the persisted API port, or sets it when a
// candidate value is given.
func HandlePortCommand() {
	if hasHelpFlag() {
		showPortHelp()
		os.Exit(0)
	}

	mgr, err := newManager()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	if len(os.Args) < 3 {
		fmt.Printf("API port: %d\n", mgr.APIPort())
		return
	}

	requireRoot("port")

	candidate := os.Args[2]
	port, err := mgr.SetAPIPort(candidate)
	if err != nil {
		fmt.Printf("Error: invalid port %q: must be a number in [%d, %d]\n",
			candidate, config.MinAPIPort, config.MaxAPIPort)
		os.Exit(1)
	}

	if mgr.ServiceInstalled() {
		fmt.Printf("✅ API port set to %d, service restart requested.\n", port)
	} else {
		fmt.Printf("✅ API port set to %d.\n", port)
	}
}

// showPortHelp displays help for the port command
func showPortHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s port - Show or set the API port

Without arguments, prints the persisted API port (default %d). With a value,
validates it (digits only, range [%d, %d]), persists it and requests a
restart of the tunnel service when installed. An invalid value leaves the
persisted port unchanged.

Usage:
  %s port
  sudo %s port <value>
`, programName, config.DefaultAPIPort, config.MinAPIPort, config.MaxAPIPort, programName, programName)
}

package cmd

import (
	"fmt"
	"os"
	"strings"
)

// HandleStatusCommand reports the service unit state and per-tunnel
// reachability.
func HandleStatusCommand() {
	if hasHelpFlag() {
		showStatusHelp()
		os.Exit(0)
	}

	mgr, err := newManager()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	st := mgr.Status()
	if !st.UnitInstalled {
		fmt.Println("Service: not installed")
	} else if st.UnitActive {
		fmt.Println("Service: active")
	} else {
		fmt.Println("Service: installed, not running")
	}

	if st.UnitInstalled {
		if out, err := mgr.ServiceStatus(); err == nil || strings.TrimSpace(out) != "" {
			fmt.Println()
			fmt.Println(strings.TrimRight(out, "\n"))
		}
	}

	if len(st.Tunnels) > 0 {
		fmt.Println()
		for _, ts := range st.Tunnels {
			state := "down"
			if ts.Up {
				state = "up"
			}
			fmt.Printf("  %d -> %s [%s]\n", ts.Tunnel.FrontendPort, ts.Tunnel.Backend(), state)
		}
	}
}

// showStatusHelp displays help for the status command
func showStatusHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s status - Show service and tunnel status

Prints the traefik-tunnel.service unit state, the captured systemctl status
output, and a reachability probe for every configured tunnel.

Usage:
  %s status
`, programName, programName)
}

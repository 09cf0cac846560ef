package cmd

import (
	"fmt"
	"os"
)

// HandleListCommand prints the configured tunnels.
func HandleListCommand() {
	if hasHelpFlag() {
		showListHelp()
		os.Exit(0)
	}

	mgr, err := newManager()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	tunnels := mgr.List()
	if len(tunnels) == 0 {
		fmt.Println("No tunnels found.")
		return
	}

	fmt.Println("=======================")
	fmt.Println(" Forwarding Rules (Tunnels)")
	fmt.Println("=======================")
	for i, t := range tunnels {
		fmt.Printf("%d | Frontend Port: %d | Backend: %s\n", i+1, t.FrontendPort, t.Backend())
	}
	fmt.Println("=======================")
}

// showListHelp displays help for the list command
func showListHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s list - Show configured tunnels

Prints every forwarding rule in the tunnel registry.

Usage:
  %s list
`, programName, programName)
}

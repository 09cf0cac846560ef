package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

// HandleUninstallCommand removes the tunnel service and its configuration
// after an explicit confirmation.
func HandleUninstallCommand() {
	if hasHelpFlag() {
		showUninstallHelp()
		os.Exit(0)
	}

	uninstallCmd := flag.NewFlagSet("uninstall", flag.ExitOnError)
	acceptAll := uninstallCmd.Bool("y", false, "Uninstall without prompting")
	uninstallCmd.Usage = showUninstallHelp

	if err := uninstallCmd.Parse(os.Args[2:]); err != nil {
		fmt.Printf("Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	requireRoot("uninstall")

	if !*acceptAll {
		fmt.Print("Uninstall the tunnel service and remove all configuration? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		resp, _ := reader.ReadString('\n')
		resp = strings.TrimSpace(strings.ToLower(resp))
		if resp != "y" && resp != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	mgr, err := newManager()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := mgr.Uninstall(); err != nil {
		fmt.Printf("Error uninstalling tunnel service: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🧹 Tunnel service uninstalled.")
}

// showUninstallHelp displays help for the uninstall command
func showUninstallHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s uninstall - Remove the Traefik tunnel service

Stops and disables traefik-tunnel.service, removes the unit file and deletes
the /etc/traefik configuration directory, tunnel registry included.

Usage:
  sudo %s uninstall [options]

Options:
  -y            Uninstall without prompting for confirmation
  -h, --help    Show this help message
`, programName, programName)
}

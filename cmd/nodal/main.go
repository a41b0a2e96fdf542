package main

import (
	"os"

	"github.com/spf13/cobra"

	"nodal/internal/interfaces/cli/migrate"
	"nodal/internal/interfaces/cli/server"
	"nodal/internal/interfaces/cli/worker"
	"nodal/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "nodal",
		Short:   "Nodal - VPN subscription control plane",
		Long:    "Nodal serves coin purchases, Clash subscription rendering, and node fleet management for a VPN provider.",
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

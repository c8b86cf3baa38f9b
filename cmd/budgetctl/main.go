package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/cli"
	"github.com/example/budgetctl/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "budgetctl",
		Short:   "budgetctl - Gestion budgétaire en ligne de commande",
		Version: version.String(),
		Long: `budgetctl suit les budgets annuels, les bons de commande, les clients,
les contrats, les projets d'investissement et les tâches associées.
La consommation budgétaire découle des bons de commande validés.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.BudgetCmd())
	rootCmd.AddCommand(cli.BCCmd())
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.ContactCmd())
	rootCmd.AddCommand(cli.ContratCmd())
	rootCmd.AddCommand(cli.ProjetCmd())
	rootCmd.AddCommand(cli.TodoCmd())
	rootCmd.AddCommand(cli.AlertesCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.BackupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

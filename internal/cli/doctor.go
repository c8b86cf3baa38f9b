package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/config"
	"github.com/example/budgetctl/internal/db"
)

// DoctorCmd returns the doctor command
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Vérifier l'installation locale",
		Long:  `Contrôler le répertoire de données, la configuration, la base et le répertoire de sauvegarde.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen).Sprint("OK")
			missing := color.New(color.FgRed).Sprint("MANQUANT")
			healthy := true

			dir, err := config.DefaultDataDir()
			if err != nil {
				return fmt.Errorf("répertoire de données inaccessible: %w", err)
			}
			if _, err := os.Stat(dir); err == nil {
				fmt.Fprintf(out, "Répertoire de données : %s (%s)\n", ok, dir)
			} else {
				fmt.Fprintf(out, "Répertoire de données : %s (%s)\n", missing, dir)
				healthy = false
			}

			cfg, err := config.Load(dir)
			if err != nil {
				fmt.Fprintf(out, "Configuration         : %s (%v)\n", missing, err)
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Lancer `budgetctl init` pour initialiser l'installation.")
				return nil
			}
			fmt.Fprintf(out, "Configuration         : %s\n", ok)

			if _, err := os.Stat(cfg.DBPath); err != nil {
				fmt.Fprintf(out, "Base de données       : %s (%s)\n", missing, cfg.DBPath)
				healthy = false
			} else if store, err := db.Open(cfg.DBPath); err != nil {
				fmt.Fprintf(out, "Base de données       : %s (%v)\n",
					color.New(color.FgRed).Sprint("ILLISIBLE"), err)
				healthy = false
			} else {
				store.Close()
				fmt.Fprintf(out, "Base de données       : %s (%s)\n", ok, cfg.DBPath)
			}

			if _, err := os.Stat(cfg.BackupDir); err == nil {
				fmt.Fprintf(out, "Sauvegardes           : %s (%s)\n", ok, cfg.BackupDir)
			} else {
				fmt.Fprintf(out, "Sauvegardes           : %s (%s)\n", missing, cfg.BackupDir)
				healthy = false
			}

			fmt.Fprintln(out)
			if healthy {
				fmt.Fprintln(out, "Tout est en ordre.")
			} else {
				fmt.Fprintln(out, "Lancer `budgetctl init` pour corriger l'installation.")
			}
			return nil
		},
	}
}

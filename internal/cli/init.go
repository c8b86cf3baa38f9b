package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/config"
	"github.com/example/budgetctl/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialiser la base de données et la configuration",
		Long:  `Créer le répertoire de données, écrire la configuration par défaut et initialiser le schéma de la base.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.DefaultDataDir()
			if err != nil {
				return fmt.Errorf("répertoire de données inaccessible: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("création du répertoire %s: %w", dir, err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				return fmt.Errorf("chargement de la configuration: %w", err)
			}
			if err := config.Save(dir, cfg); err != nil {
				return fmt.Errorf("écriture de la configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialisation de la base %s\n", cfg.DBPath)

			store, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("initialisation de la base: %w", err)
			}
			defer store.Close()

			if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
				return fmt.Errorf("création du répertoire de sauvegarde: %w", err)
			}

			fmt.Fprintln(out, "✓ Base de données initialisée")
			fmt.Fprintf(out, "✓ Configuration écrite dans %s\n", dir)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Pour commencer :")
			fmt.Fprintln(out, "  budgetctl budget create 2026 Fonctionnement 50000")
			fmt.Fprintln(out, "  budgetctl status")

			return nil
		},
	}
}

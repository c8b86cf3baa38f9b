package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/wire"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Sauvegarder et restaurer la base de données",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Créer une sauvegarde de la base",
	RunE: func(cmd *cobra.Command, args []string) error {
		commentaire, _ := cmd.Flags().GetString("commentaire")

		s, err := wire.BackupService().CreateBackup(cmd.Context(), commentaire)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Sauvegarde #%d créée : %s (%.1f Ko)\n", s.ID, s.NomFichier, s.TailleKo)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les sauvegardes, les plus récentes d'abord",
	RunE: func(cmd *cobra.Command, args []string) error {
		backups, err := wire.BackupService().ListBackups(cmd.Context())
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		if len(backups) == 0 {
			fmt.Fprintln(out, "Aucune sauvegarde")
			return nil
		}
		fmt.Fprintf(out, "%-5s %-30s %-20s %-10s %s\n", "ID", "FICHIER", "DATE", "TAILLE", "COMMENTAIRE")
		for _, s := range backups {
			fmt.Fprintf(out, "%-5d %-30s %-20s %7.1f Ko %s\n",
				s.ID, s.NomFichier, s.DateSauvegarde, s.TailleKo, s.Commentaire)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restaurer la base depuis une sauvegarde",
	Long: `Restaurer la base depuis une sauvegarde. La base courante est
elle-même sauvegardée avant d'être remplacée.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		result, err := wire.BackupService().RestoreBackup(cmd.Context(), id)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Base restaurée depuis %s\n", result.Restored.NomFichier)
		fmt.Fprintf(out, "  Base précédente conservée dans %s\n", result.SafetyBackup)
		return nil
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer une sauvegarde",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.BackupService().DeleteBackup(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Sauvegarde #%d supprimée\n", id)
		return nil
	},
}

// BackupCmd returns the backup command
func BackupCmd() *cobra.Command {
	backupCreateCmd.Flags().StringP("commentaire", "c", "", "Commentaire associé à la sauvegarde")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)

	return backupCmd
}

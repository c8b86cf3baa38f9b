package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Vue d'ensemble de l'exercice en cours",
	Long: `Afficher un résumé de l'exercice budgétaire : totaux de l'année,
contrats actifs, tâches ouvertes et alertes en attente.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		annee, _ := cmd.Flags().GetInt("annee")
		if annee == 0 {
			annee = time.Now().Year()
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Exercice %d\n\n", annee)

		stats, err := wire.BudgetService().Statistics(cmd.Context(), annee)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(out, "Budgets     : %.2f € dotés, %.2f € consommés, %.2f € disponibles\n",
			stats.TotalInitial, stats.TotalConsomme, stats.TotalDisponible)
		fmt.Fprintf(out, "BC          : %d validé(s), %d en attente (%.2f €)\n",
			stats.BCsValides, stats.BCsEnAttente, stats.MontantEnAttente)

		contrats, err := wire.ContratService().ListContrats(cmd.Context(), primary.ContratFilters{Statut: "Actif"})
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(out, "Contrats    : %d actif(s)\n", len(contrats))

		open := false
		todos, err := wire.TodoService().ListTodos(cmd.Context(), primary.TodoFilters{Complete: &open})
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(out, "Tâches      : %d à faire\n", len(todos))

		report, err := wire.AlertService().Alerts(cmd.Context(), primary.AlertRequest{Annee: annee})
		if err != nil {
			return userError(err)
		}
		alertes := len(report.ContratsExpirants) + len(report.BudgetsEpuises) + len(report.BCsEnAttente)
		if alertes > 0 {
			fmt.Fprintf(out, "Alertes     : %s\n",
				color.New(color.FgYellow).Sprintf("%d point(s) d'attention (budgetctl alertes)", alertes))
		} else {
			fmt.Fprintf(out, "Alertes     : %s\n", color.New(color.FgGreen).Sprint("aucune"))
		}
		return nil
	},
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	statusCmd.Flags().IntP("annee", "a", 0, "Année à résumer (par défaut l'année courante)")

	return statusCmd
}

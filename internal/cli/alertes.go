package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var alertesCmd = &cobra.Command{
	Use:   "alertes",
	Short: "Afficher les points d'attention",
	Long: `Balayer la base et afficher tout ce qui demande une action :
- contrats arrivant à échéance
- budgets presque épuisés
- bons de commande en attente de validation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.AlertRequest{}
		req.ThresholdMonths, _ = cmd.Flags().GetInt("mois")
		req.Annee, _ = cmd.Flags().GetInt("annee")
		if req.ThresholdMonths == 0 {
			req.ThresholdMonths = wire.Config().AlertThresholdMonths
		}

		report, err := wire.AlertService().Alerts(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		printAlertReport(cmd, report)
		return nil
	},
}

func printAlertReport(cmd *cobra.Command, report *primary.AlertReport) {
	out := cmd.OutOrStdout()
	total := len(report.ContratsExpirants) + len(report.BudgetsEpuises) + len(report.BCsEnAttente)
	if total == 0 {
		fmt.Fprintf(out, "%s Rien à signaler\n", color.New(color.FgGreen).Sprint("✓"))
		return
	}

	if len(report.ContratsExpirants) > 0 {
		fmt.Fprintf(out, "%s Contrats arrivant à échéance :\n", color.New(color.FgYellow).Sprint("!"))
		for _, a := range report.ContratsExpirants {
			urgence := color.New(color.FgYellow)
			if a.JoursRestants <= 30 {
				urgence = color.New(color.FgRed)
			}
			fmt.Fprintf(out, "  %s — %s, expire le %s (%s)\n",
				a.Contrat.Numero, a.ClientNom, a.Contrat.DateFin,
				urgence.Sprintf("J-%d", a.JoursRestants))
		}
		fmt.Fprintln(out)
	}

	if len(report.BudgetsEpuises) > 0 {
		fmt.Fprintf(out, "%s Budgets presque épuisés :\n", color.New(color.FgRed).Sprint("!"))
		for _, a := range report.BudgetsEpuises {
			fmt.Fprintf(out, "  Budget #%d %d %s — disponible %.2f € (%s)\n",
				a.Budget.ID, a.Budget.Annee, a.Budget.Nature, a.Budget.MontantDisponible,
				color.New(color.FgRed).Sprintf("%.0f %%", a.RatioDisponible*100))
		}
		fmt.Fprintln(out)
	}

	if len(report.BCsEnAttente) > 0 {
		fmt.Fprintf(out, "%s Bons de commande en attente de validation :\n", color.New(color.FgCyan).Sprint("•"))
		for _, bc := range report.BCsEnAttente {
			fmt.Fprintf(out, "  %s — %.2f € (budget #%d)\n", bc.Numero, bc.Montant, bc.BudgetID)
		}
	}
}

// AlertesCmd returns the alertes command
func AlertesCmd() *cobra.Command {
	alertesCmd.Flags().IntP("mois", "m", 0, "Horizon d'expiration des contrats en mois")
	alertesCmd.Flags().IntP("annee", "a", 0, "Année budgétaire à examiner")

	return alertesCmd
}

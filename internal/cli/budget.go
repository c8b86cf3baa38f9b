package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/wire"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Gérer les budgets annuels par nature",
	Long:  "Créer, consulter et gérer les enveloppes budgétaires (année, nature)",
}

var budgetCreateCmd = &cobra.Command{
	Use:   "create [annee] [nature] [montant]",
	Short: "Créer un budget",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		annee, err := parseAnnee(args[0])
		if err != nil {
			return err
		}
		montant, err := parseMontant(args[2])
		if err != nil {
			return err
		}
		service, _ := cmd.Flags().GetString("service")

		return userError(wire.BudgetAdapter().Create(cmd.Context(), annee, args[1], montant, service))
	},
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les budgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		annee, _ := cmd.Flags().GetInt("annee")
		nature, _ := cmd.Flags().GetString("nature")

		return userError(wire.BudgetAdapter().List(cmd.Context(), annee, nature))
	},
}

var budgetShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Afficher un budget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		_, err = wire.BudgetAdapter().Show(cmd.Context(), id)
		return userError(err)
	},
}

var budgetUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier la dotation ou le service d'un budget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var montant *float64
		if cmd.Flags().Changed("montant") {
			v, _ := cmd.Flags().GetFloat64("montant")
			montant = &v
		}
		var service *string
		if cmd.Flags().Changed("service") {
			v, _ := cmd.Flags().GetString("service")
			service = &v
		}

		return userError(wire.BudgetAdapter().Update(cmd.Context(), id, montant, service))
	},
}

var budgetDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer un budget",
	Long: `Supprimer un budget.

Un budget avec des BC validés ne peut jamais être supprimé. Les
brouillons de BC bloquent la suppression sauf avec --force, qui les
supprime avec le budget.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		return userError(wire.BudgetAdapter().Delete(cmd.Context(), id, force))
	},
}

var budgetRecomputeCmd = &cobra.Command{
	Use:   "recompute [id]",
	Short: "Recalculer les montants d'un budget depuis ses BC validés",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return userError(wire.BudgetAdapter().Recompute(cmd.Context(), id))
	},
}

var budgetReportCmd = &cobra.Command{
	Use:   "report [annee] [annee-cible]",
	Short: "Reporter les disponibles d'une année sur une autre",
	Long: `Reporter le disponible de chaque nature d'une année sur l'année cible
(par défaut la suivante). Les natures déjà budgétées dans l'année cible
sont ignorées.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		annee, err := parseAnnee(args[0])
		if err != nil {
			return err
		}
		cible := 0
		if len(args) == 2 {
			if cible, err = parseAnnee(args[1]); err != nil {
				return err
			}
		}

		return userError(wire.BudgetAdapter().CarryOver(cmd.Context(), annee, cible))
	},
}

var budgetStatsCmd = &cobra.Command{
	Use:   "stats [annee]",
	Short: "Statistiques budgétaires d'une année",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		annee, err := parseAnnee(args[0])
		if err != nil {
			return err
		}

		return userError(wire.BudgetAdapter().Statistics(cmd.Context(), annee))
	},
}

// BudgetCmd returns the budget command
func BudgetCmd() *cobra.Command {
	budgetCreateCmd.Flags().StringP("service", "s", "", "Service demandeur")
	budgetListCmd.Flags().IntP("annee", "a", 0, "Filtrer par année")
	budgetListCmd.Flags().StringP("nature", "n", "", "Filtrer par nature")
	budgetUpdateCmd.Flags().Float64P("montant", "m", 0, "Nouvelle dotation")
	budgetUpdateCmd.Flags().StringP("service", "s", "", "Nouveau service demandeur")
	budgetDeleteCmd.Flags().BoolP("force", "f", false, "Supprimer aussi les brouillons de BC")

	budgetCmd.AddCommand(budgetCreateCmd)
	budgetCmd.AddCommand(budgetListCmd)
	budgetCmd.AddCommand(budgetShowCmd)
	budgetCmd.AddCommand(budgetUpdateCmd)
	budgetCmd.AddCommand(budgetDeleteCmd)
	budgetCmd.AddCommand(budgetRecomputeCmd)
	budgetCmd.AddCommand(budgetReportCmd)
	budgetCmd.AddCommand(budgetStatsCmd)

	return budgetCmd
}

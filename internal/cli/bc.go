package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var bcCmd = &cobra.Command{
	Use:   "bc",
	Short: "Gérer les bons de commande",
	Long:  "Créer des brouillons de BC, les valider et suivre leur imputation budgétaire",
}

var bcCreateCmd = &cobra.Command{
	Use:   "create [budget-id] [type] [montant]",
	Short: "Créer un bon de commande (brouillon)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		budgetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		montant, err := parseMontant(args[2])
		if err != nil {
			return err
		}

		contratID, _ := cmd.Flags().GetInt64("contrat")
		service, _ := cmd.Flags().GetString("service")
		description, _ := cmd.Flags().GetString("description")

		req := primary.CreateBonCommandeRequest{
			BudgetID:         budgetID,
			ContratID:        contratID,
			Type:             args[1],
			ServiceDemandeur: service,
			Montant:          montant,
			Description:      description,
		}
		return userError(wire.BonCommandeAdapter().Create(cmd.Context(), req))
	},
}

var bcListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les bons de commande",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := primary.BonCommandeFilters{}
		filters.BudgetID, _ = cmd.Flags().GetInt64("budget")
		filters.Annee, _ = cmd.Flags().GetInt("annee")
		if cmd.Flags().Changed("valide") {
			v, _ := cmd.Flags().GetBool("valide")
			filters.Valide = &v
		}

		return userError(wire.BonCommandeAdapter().List(cmd.Context(), filters))
	},
}

var bcShowCmd = &cobra.Command{
	Use:   "show [numero]",
	Short: "Afficher un bon de commande par son numéro",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.BonCommandeAdapter().Show(cmd.Context(), args[0])
		return userError(err)
	},
}

var bcUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier un brouillon de BC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateBonCommandeRequest{ID: id}
		if cmd.Flags().Changed("contrat") {
			v, _ := cmd.Flags().GetInt64("contrat")
			req.ContratID = &v
		}
		if cmd.Flags().Changed("type") {
			v, _ := cmd.Flags().GetString("type")
			req.Type = &v
		}
		if cmd.Flags().Changed("service") {
			v, _ := cmd.Flags().GetString("service")
			req.ServiceDemandeur = &v
		}
		if cmd.Flags().Changed("montant") {
			v, _ := cmd.Flags().GetFloat64("montant")
			req.Montant = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}

		return userError(wire.BonCommandeAdapter().Update(cmd.Context(), req))
	},
}

var bcValidateCmd = &cobra.Command{
	Use:   "validate [id]",
	Short: "Valider un BC et imputer son montant au budget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return userError(wire.BonCommandeAdapter().Validate(cmd.Context(), id))
	},
}

var bcDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer un brouillon de BC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return userError(wire.BonCommandeAdapter().Delete(cmd.Context(), id))
	},
}

// BCCmd returns the bc command
func BCCmd() *cobra.Command {
	bcCreateCmd.Flags().Int64P("contrat", "c", 0, "Contrat rattaché")
	bcCreateCmd.Flags().StringP("service", "s", "", "Service demandeur")
	bcCreateCmd.Flags().StringP("description", "d", "", "Description")
	bcListCmd.Flags().Int64P("budget", "b", 0, "Filtrer par budget")
	bcListCmd.Flags().IntP("annee", "a", 0, "Filtrer par année")
	bcListCmd.Flags().Bool("valide", false, "Filtrer par statut de validation")
	bcUpdateCmd.Flags().Int64P("contrat", "c", 0, "Contrat rattaché")
	bcUpdateCmd.Flags().StringP("type", "t", "", "Type de BC")
	bcUpdateCmd.Flags().StringP("service", "s", "", "Service demandeur")
	bcUpdateCmd.Flags().Float64P("montant", "m", 0, "Montant")
	bcUpdateCmd.Flags().StringP("description", "d", "", "Description")

	bcCmd.AddCommand(bcCreateCmd)
	bcCmd.AddCommand(bcListCmd)
	bcCmd.AddCommand(bcShowCmd)
	bcCmd.AddCommand(bcUpdateCmd)
	bcCmd.AddCommand(bcValidateCmd)
	bcCmd.AddCommand(bcDeleteCmd)

	return bcCmd
}

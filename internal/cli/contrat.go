package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var contratCmd = &cobra.Command{
	Use:   "contrat",
	Short: "Gérer les contrats",
	Long:  "Créer, consulter, résilier les contrats et suivre leurs échéances",
}

var contratCreateCmd = &cobra.Command{
	Use:   "create [numero] [client-id] [montant]",
	Short: "Créer un contrat",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseID(args[1])
		if err != nil {
			return err
		}
		montant, err := parseMontant(args[2])
		if err != nil {
			return err
		}

		req := primary.CreateContratRequest{
			Numero:   args[0],
			ClientID: clientID,
			Montant:  montant,
		}
		req.ContactID, _ = cmd.Flags().GetInt64("contact")
		req.DateDebut, _ = cmd.Flags().GetString("debut")
		req.DateFin, _ = cmd.Flags().GetString("fin")
		req.Description, _ = cmd.Flags().GetString("description")

		contrat, err := wire.ContratService().CreateContrat(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contrat %s créé : %.2f €\n", contrat.Numero, contrat.Montant)
		return nil
	},
}

var contratListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les contrats",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := primary.ContratFilters{}
		filters.ClientID, _ = cmd.Flags().GetInt64("client")
		filters.Statut, _ = cmd.Flags().GetString("statut")

		contrats, err := wire.ContratService().ListContrats(cmd.Context(), filters)
		if err != nil {
			return userError(err)
		}
		printContrats(cmd, contrats)
		return nil
	},
}

var contratShowCmd = &cobra.Command{
	Use:   "show [numero]",
	Short: "Afficher un contrat par son numéro",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := wire.ContratService().GetContratByNumero(cmd.Context(), args[0])
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Contrat %s (#%d)\n", c.Numero, c.ID)
		fmt.Fprintf(out, "  Client   : #%d\n", c.ClientID)
		if c.ContactID != 0 {
			fmt.Fprintf(out, "  Contact  : #%d\n", c.ContactID)
		}
		fmt.Fprintf(out, "  Montant  : %.2f €\n", c.Montant)
		if c.DateDebut != "" {
			fmt.Fprintf(out, "  Début    : %s\n", c.DateDebut)
		}
		if c.DateFin != "" {
			fmt.Fprintf(out, "  Fin      : %s\n", c.DateFin)
		}
		fmt.Fprintf(out, "  Statut   : %s\n", c.Statut)
		if c.Description != "" {
			fmt.Fprintf(out, "  Description : %s\n", c.Description)
		}
		return nil
	},
}

var contratUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier un contrat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateContratRequest{ID: id}
		if cmd.Flags().Changed("contact") {
			v, _ := cmd.Flags().GetInt64("contact")
			req.ContactID = &v
		}
		req.DateDebut = stringFlag(cmd, "debut")
		req.DateFin = stringFlag(cmd, "fin")
		if cmd.Flags().Changed("montant") {
			v, _ := cmd.Flags().GetFloat64("montant")
			req.Montant = &v
		}
		req.Description = stringFlag(cmd, "description")

		contrat, err := wire.ContratService().UpdateContrat(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contrat %s mis à jour\n", contrat.Numero)
		return nil
	},
}

var contratResilierCmd = &cobra.Command{
	Use:   "resilier [id]",
	Short: "Résilier un contrat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ContratService().ResilierContrat(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contrat #%d résilié\n", id)
		return nil
	},
}

var contratDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer un contrat sans BC rattaché",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ContratService().DeleteContrat(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contrat #%d supprimé\n", id)
		return nil
	},
}

var contratExpirationsCmd = &cobra.Command{
	Use:   "expirations",
	Short: "Lister les contrats expirant prochainement",
	RunE: func(cmd *cobra.Command, args []string) error {
		months, _ := cmd.Flags().GetInt("mois")

		contrats, err := wire.ContratService().ListExpiring(cmd.Context(), months)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		if len(contrats) == 0 {
			fmt.Fprintf(out, "Aucun contrat n'expire dans les %d prochains mois\n", months)
			return nil
		}
		printContrats(cmd, contrats)
		return nil
	},
}

func printContrats(cmd *cobra.Command, contrats []*primary.Contrat) {
	out := cmd.OutOrStdout()
	if len(contrats) == 0 {
		fmt.Fprintln(out, "Aucun contrat")
		return
	}
	fmt.Fprintf(out, "%-5s %-15s %-8s %-12s %-12s %-12s %-10s\n",
		"ID", "NUMÉRO", "CLIENT", "DÉBUT", "FIN", "MONTANT", "STATUT")
	for _, c := range contrats {
		fmt.Fprintf(out, "%-5d %-15s %-8d %-12s %-12s %10.2f € %-10s\n",
			c.ID, c.Numero, c.ClientID, c.DateDebut, c.DateFin, c.Montant, c.Statut)
	}
}

// ContratCmd returns the contrat command
func ContratCmd() *cobra.Command {
	contratCreateCmd.Flags().Int64("contact", 0, "Contact référent")
	contratCreateCmd.Flags().String("debut", "", "Date de début (YYYY-MM-DD)")
	contratCreateCmd.Flags().String("fin", "", "Date de fin (YYYY-MM-DD)")
	contratCreateCmd.Flags().StringP("description", "d", "", "Description")
	contratListCmd.Flags().Int64P("client", "c", 0, "Filtrer par client")
	contratListCmd.Flags().StringP("statut", "s", "", "Filtrer par statut (Actif, Expiré, Résilié)")
	contratUpdateCmd.Flags().Int64("contact", 0, "Contact référent")
	contratUpdateCmd.Flags().String("debut", "", "Date de début (YYYY-MM-DD)")
	contratUpdateCmd.Flags().String("fin", "", "Date de fin (YYYY-MM-DD)")
	contratUpdateCmd.Flags().Float64P("montant", "m", 0, "Montant")
	contratUpdateCmd.Flags().StringP("description", "d", "", "Description")
	contratExpirationsCmd.Flags().IntP("mois", "m", 6, "Horizon en mois")

	contratCmd.AddCommand(contratCreateCmd)
	contratCmd.AddCommand(contratListCmd)
	contratCmd.AddCommand(contratShowCmd)
	contratCmd.AddCommand(contratUpdateCmd)
	contratCmd.AddCommand(contratResilierCmd)
	contratCmd.AddCommand(contratDeleteCmd)
	contratCmd.AddCommand(contratExpirationsCmd)

	return contratCmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var projetCmd = &cobra.Command{
	Use:   "projet",
	Short: "Gérer les projets d'investissement",
	Long:  "Créer et suivre les projets, leurs investissements prévus et leurs contacts de sourcing",
}

var projetCreateCmd = &cobra.Command{
	Use:   "create [nom]",
	Short: "Créer un projet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.CreateProjetRequest{Nom: args[0]}
		req.ClientID, _ = cmd.Flags().GetInt64("client")
		req.PorteurProjet, _ = cmd.Flags().GetString("porteur")
		req.ServiceDemandeur, _ = cmd.Flags().GetString("service")
		req.DateDebut, _ = cmd.Flags().GetString("debut")
		req.DateFinEstimee, _ = cmd.Flags().GetString("fin-estimee")
		req.Remarques, _ = cmd.Flags().GetString("remarques")
		req.Statut, _ = cmd.Flags().GetString("statut")

		projet, err := wire.ProjetService().CreateProjet(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Projet #%d créé : %s\n", projet.ID, projet.Nom)
		return nil
	},
}

var projetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les projets",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := primary.ProjetFilters{}
		filters.Statut, _ = cmd.Flags().GetString("statut")
		filters.ClientID, _ = cmd.Flags().GetInt64("client")

		projets, err := wire.ProjetService().ListProjets(cmd.Context(), filters)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		if len(projets) == 0 {
			fmt.Fprintln(out, "Aucun projet")
			return nil
		}
		fmt.Fprintf(out, "%-5s %-30s %-8s %-12s %-5s %-15s\n", "ID", "NOM", "CLIENT", "STATUT", "FAP", "INVESTISSEMENTS")
		for _, p := range projets {
			fap := "non"
			if p.FAPRedigee {
				fap = "oui"
			}
			fmt.Fprintf(out, "%-5d %-30s %-8d %-12s %-5s %12.2f €\n",
				p.ID, p.Nom, p.ClientID, p.Statut, fap, p.TotalInvestissements)
		}
		return nil
	},
}

var projetShowCmd = &cobra.Command{
	Use:   "show [id|nom]",
	Short: "Afficher un projet avec ses investissements et son sourcing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := fetchProjet(cmd, args[0])
		if err != nil {
			return userError(err)
		}
		printProjet(cmd, p)
		return nil
	},
}

var projetUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier un projet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateProjetRequest{ID: id}
		req.Nom = stringFlag(cmd, "nom")
		if cmd.Flags().Changed("client") {
			v, _ := cmd.Flags().GetInt64("client")
			req.ClientID = &v
		}
		if cmd.Flags().Changed("fap") {
			v, _ := cmd.Flags().GetBool("fap")
			req.FAPRedigee = &v
		}
		req.PorteurProjet = stringFlag(cmd, "porteur")
		req.ServiceDemandeur = stringFlag(cmd, "service")
		req.DateDebut = stringFlag(cmd, "debut")
		req.DateFinEstimee = stringFlag(cmd, "fin-estimee")
		req.DateMiseService = stringFlag(cmd, "mise-en-service")
		req.Remarques = stringFlag(cmd, "remarques")
		req.Statut = stringFlag(cmd, "statut")

		projet, err := wire.ProjetService().UpdateProjet(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Projet #%d mis à jour\n", projet.ID)
		return nil
	},
}

var projetDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer un projet et ses lignes associées",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ProjetService().DeleteProjet(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Projet #%d supprimé\n", id)
		return nil
	},
}

var projetInvestCmd = &cobra.Command{
	Use:   "invest",
	Short: "Gérer les investissements prévus d'un projet",
}

var projetInvestAddCmd = &cobra.Command{
	Use:   "add [projet-id] [type] [montant]",
	Short: "Ajouter un investissement prévu",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		projetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		montant, err := parseMontant(args[2])
		if err != nil {
			return err
		}

		req := primary.AddInvestissementRequest{
			ProjetID:      projetID,
			Type:          args[1],
			MontantEstime: montant,
		}
		req.Description, _ = cmd.Flags().GetString("description")

		inv, err := wire.ProjetService().AddInvestissement(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Investissement #%d ajouté : %s %.2f €\n", inv.ID, inv.Type, inv.MontantEstime)
		return nil
	},
}

var projetInvestUpdateCmd = &cobra.Command{
	Use:   "update [projet-id] [invest-id]",
	Short: "Modifier un investissement prévu",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		investID, err := parseID(args[1])
		if err != nil {
			return err
		}

		req := primary.UpdateInvestissementRequest{ID: investID, ProjetID: projetID}
		req.Type = stringFlag(cmd, "type")
		req.Description = stringFlag(cmd, "description")
		if cmd.Flags().Changed("montant") {
			v, _ := cmd.Flags().GetFloat64("montant")
			req.MontantEstime = &v
		}

		inv, err := wire.ProjetService().UpdateInvestissement(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Investissement #%d mis à jour\n", inv.ID)
		return nil
	},
}

var projetInvestDeleteCmd = &cobra.Command{
	Use:   "delete [projet-id] [invest-id]",
	Short: "Supprimer un investissement prévu",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		investID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := wire.ProjetService().DeleteInvestissement(cmd.Context(), projetID, investID); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Investissement #%d supprimé\n", investID)
		return nil
	},
}

var projetSourcingCmd = &cobra.Command{
	Use:   "sourcing",
	Short: "Gérer les contacts de sourcing d'un projet",
}

var projetSourcingAddCmd = &cobra.Command{
	Use:   "add [projet-id] [nom] [prenom]",
	Short: "Ajouter un contact de sourcing",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		projetID, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.AddContactSourcingRequest{
			ProjetID: projetID,
			Nom:      args[1],
			Prenom:   args[2],
		}
		req.Entreprise, _ = cmd.Flags().GetString("entreprise")
		req.Telephone, _ = cmd.Flags().GetString("telephone")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Notes, _ = cmd.Flags().GetString("notes")

		contact, err := wire.ProjetService().AddContactSourcing(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact sourcing #%d ajouté : %s %s\n", contact.ID, contact.Prenom, contact.Nom)
		return nil
	},
}

var projetSourcingUpdateCmd = &cobra.Command{
	Use:   "update [projet-id] [contact-id]",
	Short: "Modifier un contact de sourcing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		contactID, err := parseID(args[1])
		if err != nil {
			return err
		}

		req := primary.UpdateContactSourcingRequest{ID: contactID, ProjetID: projetID}
		req.Nom = stringFlag(cmd, "nom")
		req.Prenom = stringFlag(cmd, "prenom")
		req.Entreprise = stringFlag(cmd, "entreprise")
		req.Telephone = stringFlag(cmd, "telephone")
		req.Email = stringFlag(cmd, "email")
		req.Notes = stringFlag(cmd, "notes")

		contact, err := wire.ProjetService().UpdateContactSourcing(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact sourcing #%d mis à jour\n", contact.ID)
		return nil
	},
}

var projetSourcingDeleteCmd = &cobra.Command{
	Use:   "delete [projet-id] [contact-id]",
	Short: "Supprimer un contact de sourcing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		contactID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := wire.ProjetService().DeleteContactSourcing(cmd.Context(), projetID, contactID); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact sourcing #%d supprimé\n", contactID)
		return nil
	},
}

// fetchProjet resolves a positional argument as an id first, then as a
// project name.
func fetchProjet(cmd *cobra.Command, arg string) (*primary.Projet, error) {
	if id, err := parseID(arg); err == nil {
		return wire.ProjetService().GetProjet(cmd.Context(), id)
	}
	return wire.ProjetService().GetProjetByNom(cmd.Context(), arg)
}

func printProjet(cmd *cobra.Command, p *primary.Projet) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Projet #%d : %s [%s]\n", p.ID, p.Nom, p.Statut)
	if p.ClientID != 0 {
		fmt.Fprintf(out, "  Client            : #%d\n", p.ClientID)
	}
	if p.PorteurProjet != "" {
		fmt.Fprintf(out, "  Porteur           : %s\n", p.PorteurProjet)
	}
	if p.ServiceDemandeur != "" {
		fmt.Fprintf(out, "  Service demandeur : %s\n", p.ServiceDemandeur)
	}
	if p.DateDebut != "" {
		fmt.Fprintf(out, "  Début             : %s\n", p.DateDebut)
	}
	if p.DateFinEstimee != "" {
		fmt.Fprintf(out, "  Fin estimée       : %s\n", p.DateFinEstimee)
	}
	if p.DateMiseService != "" {
		fmt.Fprintf(out, "  Mise en service   : %s\n", p.DateMiseService)
	}
	fap := "non"
	if p.FAPRedigee {
		fap = "oui"
	}
	fmt.Fprintf(out, "  FAP rédigée       : %s\n", fap)
	if p.Remarques != "" {
		fmt.Fprintf(out, "  Remarques         : %s\n", p.Remarques)
	}

	if len(p.Investissements) > 0 {
		fmt.Fprintf(out, "\nInvestissements prévus (%.2f €) :\n", p.TotalInvestissements)
		for _, inv := range p.Investissements {
			fmt.Fprintf(out, "  #%-4d %-15s %10.2f €  %s\n", inv.ID, inv.Type, inv.MontantEstime, inv.Description)
		}
	}
	if len(p.ContactsSourcing) > 0 {
		fmt.Fprintln(out, "\nContacts sourcing :")
		for _, c := range p.ContactsSourcing {
			fmt.Fprintf(out, "  #%-4d %s %s (%s) %s\n", c.ID, c.Prenom, c.Nom, c.Entreprise, c.Email)
		}
	}
}

// ProjetCmd returns the projet command
func ProjetCmd() *cobra.Command {
	for _, c := range []*cobra.Command{projetCreateCmd, projetUpdateCmd} {
		c.Flags().Int64P("client", "c", 0, "Client rattaché")
		c.Flags().String("porteur", "", "Porteur du projet")
		c.Flags().StringP("service", "s", "", "Service demandeur")
		c.Flags().String("debut", "", "Date de début (YYYY-MM-DD)")
		c.Flags().String("fin-estimee", "", "Date de fin estimée (YYYY-MM-DD)")
		c.Flags().String("remarques", "", "Remarques")
		c.Flags().String("statut", "", "Statut (En cours, Terminé, Suspendu)")
	}
	projetUpdateCmd.Flags().String("nom", "", "Nom du projet")
	projetUpdateCmd.Flags().Bool("fap", false, "FAP rédigée")
	projetUpdateCmd.Flags().String("mise-en-service", "", "Date de mise en service (YYYY-MM-DD)")
	projetListCmd.Flags().StringP("statut", "s", "", "Filtrer par statut")
	projetListCmd.Flags().Int64P("client", "c", 0, "Filtrer par client")

	projetInvestAddCmd.Flags().StringP("description", "d", "", "Description")
	projetInvestUpdateCmd.Flags().StringP("type", "t", "", "Type d'investissement")
	projetInvestUpdateCmd.Flags().StringP("description", "d", "", "Description")
	projetInvestUpdateCmd.Flags().Float64P("montant", "m", 0, "Montant estimé")
	projetInvestCmd.AddCommand(projetInvestAddCmd)
	projetInvestCmd.AddCommand(projetInvestUpdateCmd)
	projetInvestCmd.AddCommand(projetInvestDeleteCmd)

	for _, c := range []*cobra.Command{projetSourcingAddCmd, projetSourcingUpdateCmd} {
		c.Flags().String("entreprise", "", "Entreprise")
		c.Flags().String("telephone", "", "Numéro de téléphone")
		c.Flags().String("email", "", "Adresse email")
		c.Flags().String("notes", "", "Notes libres")
	}
	projetSourcingUpdateCmd.Flags().String("nom", "", "Nom")
	projetSourcingUpdateCmd.Flags().String("prenom", "", "Prénom")
	projetSourcingCmd.AddCommand(projetSourcingAddCmd)
	projetSourcingCmd.AddCommand(projetSourcingUpdateCmd)
	projetSourcingCmd.AddCommand(projetSourcingDeleteCmd)

	projetCmd.AddCommand(projetCreateCmd)
	projetCmd.AddCommand(projetListCmd)
	projetCmd.AddCommand(projetShowCmd)
	projetCmd.AddCommand(projetUpdateCmd)
	projetCmd.AddCommand(projetDeleteCmd)
	projetCmd.AddCommand(projetInvestCmd)
	projetCmd.AddCommand(projetSourcingCmd)

	return projetCmd
}

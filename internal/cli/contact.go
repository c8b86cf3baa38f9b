package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Gérer les contacts des clients",
}

var contactCreateCmd = &cobra.Command{
	Use:   "create [client-id] [nom] [prenom]",
	Short: "Créer un contact",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.CreateContactRequest{
			ClientID: clientID,
			Nom:      args[1],
			Prenom:   args[2],
		}
		req.Fonction, _ = cmd.Flags().GetString("fonction")
		req.Telephone, _ = cmd.Flags().GetString("telephone")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Notes, _ = cmd.Flags().GetString("notes")

		contact, err := wire.ContactService().CreateContact(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact #%d créé : %s %s\n", contact.ID, contact.Prenom, contact.Nom)
		return nil
	},
}

var contactListCmd = &cobra.Command{
	Use:   "list [client-id]",
	Short: "Lister les contacts d'un client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseID(args[0])
		if err != nil {
			return err
		}

		contacts, err := wire.ContactService().ListContactsByClient(cmd.Context(), clientID)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		if len(contacts) == 0 {
			fmt.Fprintln(out, "Aucun contact")
			return nil
		}
		fmt.Fprintf(out, "%-5s %-25s %-20s %-25s %-15s\n", "ID", "NOM", "FONCTION", "EMAIL", "TÉLÉPHONE")
		for _, c := range contacts {
			fmt.Fprintf(out, "%-5d %-25s %-20s %-25s %-15s\n",
				c.ID, c.Prenom+" "+c.Nom, c.Fonction, c.Email, c.Telephone)
		}
		return nil
	},
}

var contactShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Afficher un contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := wire.ContactService().GetContact(cmd.Context(), id)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Contact #%d : %s %s (client #%d)\n", c.ID, c.Prenom, c.Nom, c.ClientID)
		if c.Fonction != "" {
			fmt.Fprintf(out, "  Fonction  : %s\n", c.Fonction)
		}
		if c.Email != "" {
			fmt.Fprintf(out, "  Email     : %s\n", c.Email)
		}
		if c.Telephone != "" {
			fmt.Fprintf(out, "  Téléphone : %s\n", c.Telephone)
		}
		if c.Notes != "" {
			fmt.Fprintf(out, "  Notes     : %s\n", c.Notes)
		}
		return nil
	},
}

var contactUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier un contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateContactRequest{ID: id}
		req.Nom = stringFlag(cmd, "nom")
		req.Prenom = stringFlag(cmd, "prenom")
		req.Fonction = stringFlag(cmd, "fonction")
		req.Telephone = stringFlag(cmd, "telephone")
		req.Email = stringFlag(cmd, "email")
		req.Notes = stringFlag(cmd, "notes")

		contact, err := wire.ContactService().UpdateContact(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact #%d mis à jour\n", contact.ID)
		return nil
	},
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer un contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ContactService().DeleteContact(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact #%d supprimé\n", id)
		return nil
	},
}

// ContactCmd returns the contact command
func ContactCmd() *cobra.Command {
	for _, c := range []*cobra.Command{contactCreateCmd, contactUpdateCmd} {
		c.Flags().String("fonction", "", "Fonction dans l'organisation")
		c.Flags().String("telephone", "", "Numéro de téléphone")
		c.Flags().String("email", "", "Adresse email")
		c.Flags().String("notes", "", "Notes libres")
	}
	contactUpdateCmd.Flags().String("nom", "", "Nom")
	contactUpdateCmd.Flags().String("prenom", "", "Prénom")

	contactCmd.AddCommand(contactCreateCmd)
	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactShowCmd)
	contactCmd.AddCommand(contactUpdateCmd)
	contactCmd.AddCommand(contactDeleteCmd)

	return contactCmd
}

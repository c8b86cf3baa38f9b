package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Gérer les clients",
	Long:  "Créer, consulter, désactiver et supprimer des clients",
}

var clientCreateCmd = &cobra.Command{
	Use:   "create [nom]",
	Short: "Créer un client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.CreateClientRequest{Nom: args[0]}
		req.RaisonSociale, _ = cmd.Flags().GetString("raison-sociale")
		req.Adresse, _ = cmd.Flags().GetString("adresse")
		req.CodePostal, _ = cmd.Flags().GetString("code-postal")
		req.Ville, _ = cmd.Flags().GetString("ville")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Telephone, _ = cmd.Flags().GetString("telephone")

		client, err := wire.ClientService().CreateClient(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client #%d créé : %s\n", client.ID, client.Nom)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		clients, err := wire.ClientService().ListClients(cmd.Context(), primary.ClientFilters{IncludeInactive: all})
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		if len(clients) == 0 {
			fmt.Fprintln(out, "Aucun client")
			return nil
		}
		fmt.Fprintf(out, "%-5s %-30s %-25s %-10s\n", "ID", "NOM", "VILLE", "STATUT")
		for _, c := range clients {
			statut := "actif"
			if !c.Actif {
				statut = "inactif"
			}
			fmt.Fprintf(out, "%-5d %-30s %-25s %-10s\n", c.ID, c.Nom, c.Ville, statut)
		}
		return nil
	},
}

var clientShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Afficher un client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := fetchClient(cmd, args[0])
		if err != nil {
			return userError(err)
		}
		printClient(cmd, client)
		return nil
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier un client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateClientRequest{ID: id}
		req.Nom = stringFlag(cmd, "nom")
		req.RaisonSociale = stringFlag(cmd, "raison-sociale")
		req.Adresse = stringFlag(cmd, "adresse")
		req.CodePostal = stringFlag(cmd, "code-postal")
		req.Ville = stringFlag(cmd, "ville")
		req.Email = stringFlag(cmd, "email")
		req.Telephone = stringFlag(cmd, "telephone")

		client, err := wire.ClientService().UpdateClient(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client #%d mis à jour\n", client.ID)
		return nil
	},
}

var clientDeactivateCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Désactiver un client (son historique est conservé)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ClientService().DeactivateClient(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client #%d désactivé\n", id)
		return nil
	},
}

var clientReactivateCmd = &cobra.Command{
	Use:   "reactivate [id]",
	Short: "Réactiver un client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ClientService().ReactivateClient(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client #%d réactivé\n", id)
		return nil
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer définitivement un client et ses dépendances",
	Long: `Supprimer définitivement un client. Ses contacts et contrats sont
supprimés en cascade. La suppression est refusée si le client a des BC
validés ou un projet actif avec FAP rédigée.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ClientService().DeleteClient(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client #%d supprimé\n", id)
		return nil
	},
}

// fetchClient resolves a positional argument as an id first, then as a
// client name.
func fetchClient(cmd *cobra.Command, arg string) (*primary.Client, error) {
	if id, err := parseID(arg); err == nil {
		return wire.ClientService().GetClient(cmd.Context(), id)
	}
	return wire.ClientService().GetClientByNom(cmd.Context(), arg)
}

func printClient(cmd *cobra.Command, c *primary.Client) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Client #%d : %s\n", c.ID, c.Nom)
	if c.RaisonSociale != "" {
		fmt.Fprintf(out, "  Raison sociale : %s\n", c.RaisonSociale)
	}
	if c.Adresse != "" {
		fmt.Fprintf(out, "  Adresse        : %s, %s %s\n", c.Adresse, c.CodePostal, c.Ville)
	}
	if c.Email != "" {
		fmt.Fprintf(out, "  Email          : %s\n", c.Email)
	}
	if c.Telephone != "" {
		fmt.Fprintf(out, "  Téléphone      : %s\n", c.Telephone)
	}
	if !c.Actif {
		fmt.Fprintln(out, "  Statut         : inactif")
	}
}

// stringFlag returns the flag value when it was set, nil otherwise.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	for _, c := range []*cobra.Command{clientCreateCmd, clientUpdateCmd} {
		c.Flags().String("raison-sociale", "", "Raison sociale")
		c.Flags().String("adresse", "", "Adresse postale")
		c.Flags().String("code-postal", "", "Code postal (5 chiffres)")
		c.Flags().String("ville", "", "Ville")
		c.Flags().String("email", "", "Adresse email")
		c.Flags().String("telephone", "", "Numéro de téléphone")
	}
	clientUpdateCmd.Flags().String("nom", "", "Nom du client")
	clientListCmd.Flags().BoolP("all", "a", false, "Inclure les clients inactifs")

	clientCmd.AddCommand(clientCreateCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientUpdateCmd)
	clientCmd.AddCommand(clientDeactivateCmd)
	clientCmd.AddCommand(clientReactivateCmd)
	clientCmd.AddCommand(clientDeleteCmd)

	return clientCmd
}

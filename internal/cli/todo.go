package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/wire"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Gérer les tâches à faire",
}

var todoCreateCmd = &cobra.Command{
	Use:   "create [motif]",
	Short: "Créer une tâche",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.CreateTodoRequest{Motif: args[0]}
		req.Description, _ = cmd.Flags().GetString("description")
		req.ContratID, _ = cmd.Flags().GetInt64("contrat")
		req.DateEcheance, _ = cmd.Flags().GetString("echeance")
		req.Priorite, _ = cmd.Flags().GetString("priorite")

		todo, err := wire.TodoService().CreateTodo(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Tâche #%d créée : %s [%s]\n", todo.ID, todo.Motif, todo.Priorite)
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les tâches, les plus urgentes d'abord",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := primary.TodoFilters{}
		filters.ContratID, _ = cmd.Flags().GetInt64("contrat")
		all, _ := cmd.Flags().GetBool("all")
		if !all {
			open := false
			filters.Complete = &open
		}

		todos, err := wire.TodoService().ListTodos(cmd.Context(), filters)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		if len(todos) == 0 {
			fmt.Fprintln(out, "Aucune tâche")
			return nil
		}
		fmt.Fprintf(out, "%-5s %-40s %-10s %-12s %-8s\n", "ID", "MOTIF", "PRIORITÉ", "ÉCHÉANCE", "ÉTAT")
		for _, t := range todos {
			etat := "à faire"
			if t.Complete {
				etat = "fait"
			}
			fmt.Fprintf(out, "%-5d %-40s %-10s %-12s %-8s\n", t.ID, t.Motif, t.Priorite, t.DateEcheance, etat)
		}
		return nil
	},
}

var todoUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Modifier une tâche",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateTodoRequest{ID: id}
		req.Motif = stringFlag(cmd, "motif")
		req.Description = stringFlag(cmd, "description")
		req.DateEcheance = stringFlag(cmd, "echeance")
		req.Priorite = stringFlag(cmd, "priorite")

		todo, err := wire.TodoService().UpdateTodo(cmd.Context(), req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Tâche #%d mise à jour\n", todo.ID)
		return nil
	},
}

var todoCompleteCmd = &cobra.Command{
	Use:   "complete [id]",
	Short: "Marquer une tâche comme faite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.TodoService().CompleteTodo(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Tâche #%d terminée\n", id)
		return nil
	},
}

var todoReopenCmd = &cobra.Command{
	Use:   "reopen [id]",
	Short: "Rouvrir une tâche terminée",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.TodoService().ReopenTodo(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Tâche #%d rouverte\n", id)
		return nil
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Supprimer une tâche",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.TodoService().DeleteTodo(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Tâche #%d supprimée\n", id)
		return nil
	},
}

var todoSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Créer les tâches de renouvellement des contrats expirants",
	RunE: func(cmd *cobra.Command, args []string) error {
		months, _ := cmd.Flags().GetInt("mois")

		result, err := wire.TodoService().SyncFromContrats(cmd.Context(), months)
		if err != nil {
			return userError(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ %d tâche(s) créée(s), %d déjà suivie(s)\n", result.Created, result.Skipped)
		return nil
	},
}

// TodoCmd returns the todo command
func TodoCmd() *cobra.Command {
	todoCreateCmd.Flags().StringP("description", "d", "", "Description")
	todoCreateCmd.Flags().Int64P("contrat", "c", 0, "Contrat concerné")
	todoCreateCmd.Flags().StringP("echeance", "e", "", "Date d'échéance (YYYY-MM-DD)")
	todoCreateCmd.Flags().StringP("priorite", "p", "", "Priorité (Basse, Normale, Haute, Urgente)")
	todoListCmd.Flags().Int64P("contrat", "c", 0, "Filtrer par contrat")
	todoListCmd.Flags().BoolP("all", "a", false, "Inclure les tâches terminées")
	todoUpdateCmd.Flags().String("motif", "", "Motif")
	todoUpdateCmd.Flags().StringP("description", "d", "", "Description")
	todoUpdateCmd.Flags().StringP("echeance", "e", "", "Date d'échéance (YYYY-MM-DD)")
	todoUpdateCmd.Flags().StringP("priorite", "p", "", "Priorité (Basse, Normale, Haute, Urgente)")
	todoSyncCmd.Flags().IntP("mois", "m", 6, "Horizon en mois")

	todoCmd.AddCommand(todoCreateCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoUpdateCmd)
	todoCmd.AddCommand(todoCompleteCmd)
	todoCmd.AddCommand(todoReopenCmd)
	todoCmd.AddCommand(todoDeleteCmd)
	todoCmd.AddCommand(todoSyncCmd)

	return todoCmd
}
